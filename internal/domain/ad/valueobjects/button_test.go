package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewButton(t *testing.T) {
	b, err := NewButton("  Open App  ", "https://t.me/somebot", ButtonColorBlue)
	require.NoError(t, err)

	assert.Equal(t, "Open App", b.Text(), "text is trimmed")
	assert.Equal(t, "https://t.me/somebot", b.URL())
	assert.Equal(t, ButtonColorBlue, b.Color())
}

func TestNewButton_EmptyColorDefaults(t *testing.T) {
	b, err := NewButton("Go", "https://example.com", "")
	require.NoError(t, err)
	assert.Equal(t, ButtonColorDefault, b.Color())
}

func TestNewButton_Validation(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		url   string
		color ButtonColor
	}{
		{name: "empty text", text: "  ", url: "https://example.com"},
		{name: "text too long", text: strings.Repeat("a", MaxButtonTextLen+1), url: "https://example.com"},
		{name: "empty url", text: "Go", url: ""},
		{name: "unknown color", text: "Go", url: "https://example.com", color: "magenta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewButton(tt.text, tt.url, tt.color)
			assert.Error(t, err)
		})
	}
}

