// Package markdown renders advertiser-supplied creative text into
// Telegram-compatible HTML. Telegram's HTML parse mode accepts only a small
// tag set; everything else must be stripped before delivery or the Bot API
// rejects the message.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	ToHTML(markdown string) (string, error)
	Sanitize(htmlContent string) string
	// ToTelegramHTML converts markdown to HTML restricted to the tag set
	// Telegram's HTML parse mode accepts.
	ToTelegramHTML(markdown string) (string, error)
	// SanitizeTelegramHTML strips advertiser-supplied HTML down to the
	// Telegram-safe tag set.
	SanitizeTelegramHTML(htmlContent string) string
}

type markdownServiceImpl struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	tgPolicy *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")

	// Telegram HTML parse mode: https://core.telegram.org/bots/api#html-style
	tgPolicy := bluemonday.NewPolicy()
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowStandardURLs()
	tgPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")

	return &markdownServiceImpl{
		md:       md,
		policy:   policy,
		tgPolicy: tgPolicy,
	}
}

func (s *markdownServiceImpl) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func (s *markdownServiceImpl) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}

func (s *markdownServiceImpl) ToTelegramHTML(markdown string) (string, error) {
	converted, err := s.ToHTML(markdown)
	if err != nil {
		return "", err
	}
	return s.SanitizeTelegramHTML(converted), nil
}

func (s *markdownServiceImpl) SanitizeTelegramHTML(htmlContent string) string {
	// Telegram has no block elements; paragraph and line break boundaries
	// become plain newlines before the disallowed tags are stripped.
	replacer := strings.NewReplacer(
		"</p>", "\n",
		"<p>", "",
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
	)
	flattened := replacer.Replace(htmlContent)
	return strings.TrimSpace(s.tgPolicy.Sanitize(flattened))
}
