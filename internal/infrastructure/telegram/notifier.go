package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Notifier delivers platform notifications (moderation verdicts, payout
// updates, deposit confirmations) to Telegram users over the shared bot.
type Notifier struct {
	api    *tgbotapi.Bot
	logger logger.Interface
}

func NewNotifier(api *tgbotapi.Bot, log logger.Interface) *Notifier {
	return &Notifier{
		api:    api,
		logger: log.With("component", "telegram_notifier"),
	}
}

// SendHTML sends an HTML-formatted message, splitting it into chunks when it
// exceeds Telegram's message length limit. A single 429 is waited out and
// retried; permanent failures (blocked bot, bad request) are logged and
// swallowed so a dead chat never fails the business operation behind it.
func (n *Notifier) SendHTML(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		if err := n.sendChunk(ctx, chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) sendChunk(ctx context.Context, chatID int64, text string) error {
	_, err := n.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
	})
	if err == nil {
		return nil
	}

	if IsRetryAfter(err) {
		wait := time.Duration(GetRetryAfter(err)) * time.Second
		n.logger.Warnw("rate limited by telegram", "telegram_id", chatID, "retry_after", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		_, err = n.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
			ParseMode: "HTML",
		})
		if err == nil {
			return nil
		}
	}

	if IsBotBlocked(err) {
		n.logger.Infow("recipient blocked the bot", "telegram_id", chatID)
		return nil
	}
	if isNonRetryable(err) {
		n.logger.Warnw("notification rejected by telegram", "telegram_id", chatID, "error", err)
		return nil
	}
	return err
}
