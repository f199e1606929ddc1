// Package notification fans platform events out to users over Telegram and
// to admins over email. Every send runs on its own goroutine so callers never
// block on a provider.
package notification

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/email"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram/i18n"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/goroutine"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

const sendTimeout = 15 * time.Second

// Recipient is where and in which language to reach one user.
type Recipient struct {
	TelegramID int64
	Locale     string
}

// AdDisplayTitle picks what to call an ad in a human-facing message: the
// first line of its text, shortened, or the SID when the creative has none.
func AdDisplayTitle(text, sid string) string {
	for i, r := range text {
		if r == '\n' {
			text = text[:i]
			break
		}
	}
	if utf8.RuneCountInString(text) > 48 {
		runes := []rune(text)
		text = string(runes[:48]) + "…"
	}
	if text == "" {
		return sid
	}
	return text
}

// Dispatcher owns the outbound channels. Either channel may be absent; sends
// then turn into no-ops for it.
type Dispatcher struct {
	telegram *telegram.Notifier
	email    *email.Manager
	logger   logger.Interface
}

func NewDispatcher(tg *telegram.Notifier, mail *email.Manager, logger logger.Interface) *Dispatcher {
	return &Dispatcher{
		telegram: tg,
		email:    mail,
		logger:   logger.With("component", "notification_dispatcher"),
	}
}

// --- user-facing (Telegram) ---

func (d *Dispatcher) AdApproved(to Recipient, adTitle string) {
	d.sendTelegram("ad-approved", to, func(lang i18n.Lang) string {
		return i18n.MsgAdApproved(lang, adTitle)
	})
}

func (d *Dispatcher) AdRejected(to Recipient, adTitle, reason string) {
	d.sendTelegram("ad-rejected", to, func(lang i18n.Lang) string {
		return i18n.MsgAdRejected(lang, adTitle, reason)
	})
}

func (d *Dispatcher) AdEditRequested(to Recipient, adTitle, feedback string) {
	d.sendTelegram("ad-edit-requested", to, func(lang i18n.Lang) string {
		return i18n.MsgAdEditRequested(lang, adTitle, feedback)
	})
}

func (d *Dispatcher) AdCompleted(to Recipient, adTitle string, impressions int64) {
	d.sendTelegram("ad-completed", to, func(lang i18n.Lang) string {
		return i18n.MsgAdCompleted(lang, adTitle, impressions)
	})
}

func (d *Dispatcher) BotApproved(to Recipient, botUsername string) {
	d.sendTelegram("bot-approved", to, func(lang i18n.Lang) string {
		return i18n.MsgBotApproved(lang, botUsername)
	})
}

func (d *Dispatcher) BotRejected(to Recipient, botUsername, reason string) {
	d.sendTelegram("bot-rejected", to, func(lang i18n.Lang) string {
		return i18n.MsgBotRejected(lang, botUsername, reason)
	})
}

func (d *Dispatcher) BotSuspended(to Recipient, botUsername, reason string) {
	d.sendTelegram("bot-suspended", to, func(lang i18n.Lang) string {
		return i18n.MsgBotSuspended(lang, botUsername, reason)
	})
}

func (d *Dispatcher) DepositCredited(to Recipient, amount string) {
	d.sendTelegram("deposit-credited", to, func(lang i18n.Lang) string {
		return i18n.MsgDepositCredited(lang, amount)
	})
}

func (d *Dispatcher) WithdrawApproved(to Recipient, amount string) {
	d.sendTelegram("withdraw-approved", to, func(lang i18n.Lang) string {
		return i18n.MsgWithdrawApproved(lang, amount)
	})
}

func (d *Dispatcher) WithdrawCompleted(to Recipient, amount, txHash string) {
	d.sendTelegram("withdraw-completed", to, func(lang i18n.Lang) string {
		return i18n.MsgWithdrawCompleted(lang, amount, txHash)
	})
}

func (d *Dispatcher) WithdrawRejected(to Recipient, amount, reason string) {
	d.sendTelegram("withdraw-rejected", to, func(lang i18n.Lang) string {
		return i18n.MsgWithdrawRejected(lang, amount, reason)
	})
}

// --- admin-facing (email) ---

func (d *Dispatcher) AdPendingReview(adSID, title, advertiserSID string) {
	d.sendEmail("ad-pending-review-mail", func() error {
		return d.email.SendAdPendingReviewEmail(adSID, title, advertiserSID)
	})
}

func (d *Dispatcher) BotPendingReview(botSID, username, ownerSID string) {
	d.sendEmail("bot-pending-review-mail", func() error {
		return d.email.SendBotPendingReviewEmail(botSID, username, ownerSID)
	})
}

func (d *Dispatcher) WithdrawalRequested(withdrawalSID, userSID, amount, network, address string) {
	d.sendEmail("withdrawal-requested-mail", func() error {
		return d.email.SendWithdrawalRequestedEmail(withdrawalSID, userSID, amount, network, address)
	})
}

func (d *Dispatcher) ReconciliationAlert(provider, providerTxID, reason string) {
	d.sendEmail("reconciliation-alert-mail", func() error {
		return d.email.SendReconciliationAlertEmail(provider, providerTxID, reason)
	})
}

func (d *Dispatcher) sendTelegram(name string, to Recipient, build func(i18n.Lang) string) {
	if d.telegram == nil || to.TelegramID == 0 {
		return
	}

	text := build(i18n.ParseLang(to.Locale))
	goroutine.SafeGo(d.logger, name, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.telegram.SendHTML(ctx, to.TelegramID, text); err != nil {
			d.logger.Warnw("telegram notification failed", "error", err, "kind", name, "telegram_id", to.TelegramID)
		}
	})
}

func (d *Dispatcher) sendEmail(name string, send func() error) {
	if d.email == nil || !d.email.IsConfigured() {
		return
	}

	goroutine.SafeGo(d.logger, name, func() {
		if err := send(); err != nil {
			d.logger.Warnw("admin email failed", "error", err, "kind", name)
		}
	})
}
