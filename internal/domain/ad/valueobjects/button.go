package valueobjects

import (
	"fmt"
	"strings"
)

// ButtonColor is the closed set of inline button colors bots can render.
type ButtonColor string

const (
	ButtonColorDefault ButtonColor = "default"
	ButtonColorBlue    ButtonColor = "blue"
	ButtonColorGreen   ButtonColor = "green"
	ButtonColorRed     ButtonColor = "red"
	ButtonColorViolet  ButtonColor = "violet"
	ButtonColorOrange  ButtonColor = "orange"
)

func (c ButtonColor) IsValid() bool {
	switch c {
	case ButtonColorDefault, ButtonColorBlue, ButtonColorGreen, ButtonColorRed, ButtonColorViolet, ButtonColorOrange:
		return true
	default:
		return false
	}
}

func (c ButtonColor) String() string {
	return string(c)
}

// MaxButtons caps the inline keyboard size per ad.
const MaxButtons = 8

// MaxButtonTextLen keeps button captions within what Telegram renders cleanly.
const MaxButtonTextLen = 64

// Button is one inline keyboard button attached to an ad. The order of
// buttons on the ad is the order they render in.
type Button struct {
	text  string
	url   string
	color ButtonColor
}

// NewButton validates and builds a button. An empty color means default.
func NewButton(text, url string, color ButtonColor) (Button, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Button{}, fmt.Errorf("button text is required")
	}
	if len(text) > MaxButtonTextLen {
		return Button{}, fmt.Errorf("button text exceeds %d characters", MaxButtonTextLen)
	}
	if url == "" {
		return Button{}, fmt.Errorf("button url is required")
	}
	if color == "" {
		color = ButtonColorDefault
	}
	if !color.IsValid() {
		return Button{}, fmt.Errorf("invalid button color: %s", color)
	}

	return Button{text: text, url: url, color: color}, nil
}

func (b Button) Text() string {
	return b.text
}

func (b Button) URL() string {
	return b.url
}

func (b Button) Color() ButtonColor {
	return b.color
}

// ReconstructButton rebuilds a button from persistence without validation.
func ReconstructButton(text, url string, color ButtonColor) Button {
	return Button{text: text, url: url, color: color}
}
