package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoll(t *testing.T) {
	p, err := NewPoll("Which feature next?", []string{"Payments", "Analytics", "API"}, true, false)
	require.NoError(t, err)

	assert.Equal(t, "Which feature next?", p.Question())
	assert.Len(t, p.Options(), 3)
	assert.True(t, p.IsAnonymous())
	assert.False(t, p.MultipleAnswers())
}

func TestNewPoll_Validation(t *testing.T) {
	tests := []struct {
		name     string
		question string
		options  []string
	}{
		{name: "empty question", question: " ", options: []string{"a", "b"}},
		{name: "question too long", question: strings.Repeat("q", MaxPollTextLen+1), options: []string{"a", "b"}},
		{name: "one option", question: "q", options: []string{"a"}},
		{name: "eleven options", question: "q", options: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}},
		{name: "blank option", question: "q", options: []string{"a", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPoll(tt.question, tt.options, true, false)
			assert.Error(t, err)
		})
	}
}

func TestPoll_OptionsAreCopied(t *testing.T) {
	opts := []string{"a", "b"}
	p, err := NewPoll("q", opts, true, false)
	require.NoError(t, err)

	opts[0] = "mutated"
	assert.Equal(t, "a", p.Options()[0])

	got := p.Options()
	got[1] = "mutated"
	assert.Equal(t, "b", p.Options()[1])
}
