package adserver

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/services/markdown"
)

// Telegram Bot API method names the payload is shaped for.
const (
	methodSendMessage = "sendMessage"
	methodSendPhoto   = "sendPhoto"
	methodSendPoll    = "sendPoll"
)

// InlineKeyboardButton mirrors the Telegram object of the same name.
type InlineKeyboardButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// InlineKeyboardMarkup mirrors the Telegram object of the same name.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// AdMessage is ready to forward to the Telegram Bot API verbatim: the bot
// posts it to <api>/<method> with chat_id filled in.
type AdMessage struct {
	Method                string                `json:"method"`
	ChatID                int64                 `json:"chat_id"`
	Text                  string                `json:"text,omitempty"`
	Photo                 string                `json:"photo,omitempty"`
	Caption               string                `json:"caption,omitempty"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	Question              string                `json:"question,omitempty"`
	Options               []string              `json:"options,omitempty"`
	IsAnonymous           *bool                 `json:"is_anonymous,omitempty"`
	AllowsMultipleAnswers bool                  `json:"allows_multiple_answers,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// ServeResponse is one delivery. The HTTP layer sends Message as the 200
// body verbatim and carries the identifiers in response headers; the full
// struct is what the request-replay cache stores.
type ServeResponse struct {
	AdID         string    `json:"adId"`
	ImpressionID string    `json:"impressionId"`
	Message      AdMessage `json:"message"`
}

// messageBuilder assembles Telegram payloads from ad creatives.
type messageBuilder struct {
	markdown markdown.MarkdownService
	// clickBase is the public origin click links point at, no trailing slash.
	clickBase string
}

func newMessageBuilder(md markdown.MarkdownService, clickBase string) *messageBuilder {
	return &messageBuilder{markdown: md, clickBase: clickBase}
}

// Build renders the creative for one viewer. Button URLs are swapped for
// tracked redirects so clicks land in our click log first.
func (b *messageBuilder) Build(a *ad.Ad, botSID string, chatID int64) (AdMessage, error) {
	text, parseMode, err := b.renderText(a)
	if err != nil {
		return AdMessage{}, err
	}

	msg := AdMessage{
		ChatID:      chatID,
		ReplyMarkup: b.keyboard(a, botSID, chatID),
	}

	switch {
	case a.Poll() != nil:
		poll := a.Poll()
		anonymous := poll.IsAnonymous()
		msg.Method = methodSendPoll
		msg.Question = poll.Question()
		msg.Options = poll.Options()
		msg.IsAnonymous = &anonymous
		msg.AllowsMultipleAnswers = poll.MultipleAnswers()
	case a.ContentType() == vo.ContentTypeMedia:
		msg.Method = methodSendPhoto
		msg.Photo = a.MediaURL()
		msg.Caption = text
		msg.ParseMode = parseMode
	default:
		msg.Method = methodSendMessage
		msg.Text = text
		msg.ParseMode = parseMode
	}
	return msg, nil
}

func (b *messageBuilder) renderText(a *ad.Ad) (text, parseMode string, err error) {
	switch a.ContentType() {
	case vo.ContentTypeHTML:
		return b.markdown.SanitizeTelegramHTML(a.HTMLContent()), "HTML", nil
	case vo.ContentTypeMarkdown:
		html, err := b.markdown.ToTelegramHTML(a.Text())
		if err != nil {
			return "", "", fmt.Errorf("failed to render ad text: %w", err)
		}
		return html, "HTML", nil
	default:
		return a.Text(), "", nil
	}
}

// keyboard lays buttons out one per row, each pointing at the click tracker.
func (b *messageBuilder) keyboard(a *ad.Ad, botSID string, viewerID int64) *InlineKeyboardMarkup {
	buttons := a.Buttons()
	if len(buttons) == 0 {
		return nil
	}

	rows := make([][]InlineKeyboardButton, 0, len(buttons))
	for i, btn := range buttons {
		rows = append(rows, []InlineKeyboardButton{{
			Text: btn.Text(),
			URL:  b.clickURL(a.SID(), botSID, i, viewerID),
		}})
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (b *messageBuilder) clickURL(adSID, botSID string, index int, viewerID int64) string {
	return fmt.Sprintf("%s/c/%s/%s/%d?u=%s",
		b.clickBase,
		url.PathEscape(adSID),
		url.PathEscape(botSID),
		index,
		strconv.FormatInt(viewerID, 10))
}
