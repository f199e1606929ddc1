package valueobjects

import (
	"fmt"
	"strings"
)

// Poll option bounds follow the Telegram Bot API limits.
const (
	MinPollOptions = 2
	MaxPollOptions = 10
	MaxPollTextLen = 300
)

// Poll is an optional poll attached to an ad instead of plain content.
type Poll struct {
	question        string
	options         []string
	isAnonymous     bool
	multipleAnswers bool
}

func NewPoll(question string, options []string, isAnonymous, multipleAnswers bool) (*Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("poll question is required")
	}
	if len(question) > MaxPollTextLen {
		return nil, fmt.Errorf("poll question exceeds %d characters", MaxPollTextLen)
	}
	if len(options) < MinPollOptions || len(options) > MaxPollOptions {
		return nil, fmt.Errorf("poll needs between %d and %d options", MinPollOptions, MaxPollOptions)
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return nil, fmt.Errorf("poll option %d is empty", i+1)
		}
	}

	return &Poll{
		question:        question,
		options:         append([]string(nil), options...),
		isAnonymous:     isAnonymous,
		multipleAnswers: multipleAnswers,
	}, nil
}

func (p *Poll) Question() string {
	return p.question
}

func (p *Poll) Options() []string {
	return append([]string(nil), p.options...)
}

func (p *Poll) IsAnonymous() bool {
	return p.isAnonymous
}

func (p *Poll) MultipleAnswers() bool {
	return p.multipleAnswers
}

// ReconstructPoll rebuilds a poll from persistence without validation.
func ReconstructPoll(question string, options []string, isAnonymous, multipleAnswers bool) *Poll {
	return &Poll{
		question:        question,
		options:         options,
		isAnonymous:     isAnonymous,
		multipleAnswers: multipleAnswers,
	}
}
