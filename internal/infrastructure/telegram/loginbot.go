package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/callbackquery"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram/i18n"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/config"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Callback data prefix for login code buttons. Telegram limits callback data
// to 64 bytes; "lgc:" + uuid token + ":" + 4-digit code fits at 45.
const cbLogin = "lgc:"

// How long a single handler is allowed to hold the auth service.
const handlerTimeout = 5 * time.Second

// ErrSessionNotFound is returned by LoginService implementations when the
// login token is unknown or the session has expired.
var ErrSessionNotFound = errors.New("telegram: login session not found")

// TelegramAccount carries the identity of the Telegram user who tapped a
// login code. The auth service creates a platform account from it on first
// login.
type TelegramAccount struct {
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

// CodeResult is the outcome of submitting a login code.
type CodeResult int

const (
	CodeResultAuthorized CodeResult = iota
	CodeResultWrongCode
	CodeResultNotFound
	CodeResultConsumed
	CodeResultBanned
)

// LoginService defines the auth operations the login bot depends on.
// Implemented by internal/application/auth.
type LoginService interface {
	// SessionCodes returns the four candidate codes of a pending login
	// session, or ErrSessionNotFound when the token is unknown or expired.
	SessionCodes(ctx context.Context, token string) ([]string, error)
	// SubmitCode verifies a tapped code against the session. The correct
	// code authorizes the session exactly once.
	SubmitCode(ctx context.Context, token string, account TelegramAccount, code string) (CodeResult, error)
}

// DeepLink builds the t.me link that opens the bot with a login token as the
// /start payload.
func DeepLink(botUsername, token string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, token)
}

// NewBotAPI creates the shared Bot API client used by the login bot and the
// notifier.
func NewBotAPI(cfg *config.TelegramConfig) (*tgbotapi.Bot, error) {
	api, err := tgbotapi.NewBot(cfg.BotToken, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %w", err)
	}
	return api, nil
}

// LoginBot serves the website login handshake over long polling: a deep link
// opens the bot with a login token, the bot renders the session's four codes
// as inline buttons, and the tapped code is verified by the auth service.
type LoginBot struct {
	api     *tgbotapi.Bot
	auth    LoginService
	logger  logger.Interface
	updater *ext.Updater
}

func NewLoginBot(api *tgbotapi.Bot, auth LoginService, log logger.Interface) *LoginBot {
	return &LoginBot{
		api:    api,
		auth:   auth,
		logger: log.With("component", "login_bot"),
	}
}

// Start begins long polling and blocks until Stop is called. Run it in its
// own goroutine.
func (b *LoginBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(_ *tgbotapi.Bot, _ *ext.Context, err error) ext.DispatcherAction {
			b.logger.Errorw("handling update", "error", err)
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	b.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", b.onStart))
	dispatcher.AddHandler(handlers.NewCallback(callbackquery.Prefix(cbLogin), b.onCodeCallback))

	err := b.updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}
	b.logger.Infow("login bot polling started", "username", b.api.Username)

	b.updater.Idle()
	return nil
}

func (b *LoginBot) Stop() {
	if b.updater != nil {
		b.logger.Info("stopping login bot")
		b.updater.Stop()
	}
}

// onStart handles /start. With a token payload it renders the login prompt
// and the session's four code buttons; without one it sends the welcome text.
func (b *LoginBot) onStart(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveUser.Id
	lang := i18n.DetectLang(ctx.EffectiveUser.LanguageCode)

	args := strings.Fields(ctx.EffectiveMessage.Text)
	if len(args) < 2 {
		b.replyHTML(chatID, i18n.MsgWelcome(lang))
		return nil
	}
	token := args[1]

	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	codes, err := b.auth.SessionCodes(reqCtx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			b.replyHTML(chatID, i18n.MsgLoginExpired(lang))
			return nil
		}
		b.logger.Errorw("describing login session", "telegram_id", chatID, "error", err)
		b.replyHTML(chatID, i18n.MsgError(lang))
		return nil
	}

	b.sendWithKeyboard(chatID, i18n.MsgLoginPrompt(lang), buildCodeKeyboard(token, codes))
	return nil
}

// onCodeCallback handles a tapped code button. A wrong code leaves the
// keyboard in place so the user can tap again; every terminal outcome
// replaces the prompt text.
func (b *LoginBot) onCodeCallback(_ *tgbotapi.Bot, ctx *ext.Context) error {
	cq := ctx.CallbackQuery
	chatID := cq.From.Id
	lang := i18n.DetectLang(cq.From.LanguageCode)

	payload := strings.TrimPrefix(cq.Data, cbLogin)
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{Text: i18n.MsgError(lang)})
		return nil
	}
	token, code := parts[0], parts[1]

	reqCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	account := TelegramAccount{
		TelegramID:   cq.From.Id,
		Username:     cq.From.Username,
		FirstName:    cq.From.FirstName,
		LastName:     cq.From.LastName,
		LanguageCode: cq.From.LanguageCode,
	}

	result, err := b.auth.SubmitCode(reqCtx, token, account, code)
	if err != nil {
		b.logger.Errorw("submitting login code", "telegram_id", chatID, "error", err)
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{Text: i18n.MsgError(lang)})
		return nil
	}

	switch result {
	case CodeResultAuthorized:
		b.editPrompt(cq, i18n.MsgLoginSuccess(lang))
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{})
	case CodeResultWrongCode:
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{Text: i18n.MsgLoginWrongCode(lang), ShowAlert: true})
	case CodeResultNotFound:
		b.editPrompt(cq, i18n.MsgLoginExpired(lang))
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{})
	case CodeResultConsumed:
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{Text: i18n.MsgLoginConsumed(lang), ShowAlert: true})
	case CodeResultBanned:
		b.editPrompt(cq, i18n.MsgLoginBanned(lang))
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{})
	default:
		_, _ = cq.Answer(b.api, &tgbotapi.AnswerCallbackQueryOpts{Text: i18n.MsgError(lang)})
	}
	return nil
}

// buildCodeKeyboard lays the four codes out in rows of two.
func buildCodeKeyboard(token string, codes []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(codes)+1)/2)
	var row []tgbotapi.InlineKeyboardButton
	for i, code := range codes {
		row = append(row, tgbotapi.InlineKeyboardButton{
			Text:         code,
			CallbackData: cbLogin + token + ":" + code,
		})
		if len(row) == 2 || i == len(codes)-1 {
			rows = append(rows, row)
			row = nil
		}
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// editPrompt replaces the login prompt text, which also drops the keyboard.
func (b *LoginBot) editPrompt(cq *tgbotapi.CallbackQuery, text string) {
	msg := cq.Message
	if msg == nil {
		return
	}
	im, ok := msg.(tgbotapi.Message)
	if !ok {
		return
	}
	_, _, err := b.api.EditMessageText(text, &tgbotapi.EditMessageTextOpts{
		ChatId:    cq.From.Id,
		MessageId: im.MessageId,
		ParseMode: "HTML",
	})
	if err != nil {
		b.logger.Warnw("editing login prompt", "telegram_id", cq.From.Id, "error", err)
	}
}

func (b *LoginBot) replyHTML(chatID int64, text string) {
	_, err := b.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
	})
	if err != nil {
		b.logger.Warnw("sending message", "telegram_id", chatID, "error", err)
	}
}

func (b *LoginBot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	_, err := b.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		b.logger.Warnw("sending message with keyboard", "telegram_id", chatID, "error", err)
	}
}
