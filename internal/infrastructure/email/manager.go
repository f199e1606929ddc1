package email

import (
	"errors"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/config"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// ErrEmailServiceNotConfigured is returned when a send is attempted without
// SMTP configuration.
var ErrEmailServiceNotConfigured = errors.New("email service is not configured")

// Manager wraps the SMTP service so callers never have to care whether mail
// is configured. Deployments without SMTP run fine; alerts degrade to a
// warning log.
type Manager struct {
	logger  logger.Interface
	service *SMTPEmailService
}

func NewManager(cfg *config.EmailConfig, log logger.Interface) *Manager {
	m := &Manager{logger: log.With("component", "email")}

	if cfg.SMTPHost == "" {
		m.logger.Debugw("email service not configured, smtp_host is empty")
		return m
	}

	m.service = NewSMTPEmailService(SMTPConfig{
		Host:         cfg.SMTPHost,
		Port:         cfg.SMTPPort,
		Username:     cfg.SMTPUser,
		Password:     cfg.SMTPPassword,
		FromAddress:  cfg.FromAddress,
		FromName:     cfg.FromName,
		AdminAddress: cfg.AdminAddress,
	})
	m.logger.Infow("email service initialized",
		"host", cfg.SMTPHost,
		"port", cfg.SMTPPort,
		"from", utils.MaskEmail(cfg.FromAddress),
		"admin", utils.MaskEmail(cfg.AdminAddress),
	)

	return m
}

// IsConfigured checks if email service is configured
func (m *Manager) IsConfigured() bool {
	return m.service != nil
}

func (m *Manager) SendWithdrawalRequestedEmail(withdrawalID, userID, amount, network, address string) error {
	if m.service == nil {
		m.logger.Warnw("email service not configured, skipping withdrawal alert", "withdrawal_id", withdrawalID)
		return ErrEmailServiceNotConfigured
	}
	return m.service.SendWithdrawalRequestedEmail(withdrawalID, userID, amount, network, address)
}

func (m *Manager) SendAdPendingReviewEmail(adID, title, advertiserID string) error {
	if m.service == nil {
		m.logger.Warnw("email service not configured, skipping ad review alert", "ad_id", adID)
		return ErrEmailServiceNotConfigured
	}
	return m.service.SendAdPendingReviewEmail(adID, title, advertiserID)
}

func (m *Manager) SendBotPendingReviewEmail(botID, username, ownerID string) error {
	if m.service == nil {
		m.logger.Warnw("email service not configured, skipping bot review alert", "bot_id", botID)
		return ErrEmailServiceNotConfigured
	}
	return m.service.SendBotPendingReviewEmail(botID, username, ownerID)
}

func (m *Manager) SendReconciliationAlertEmail(provider, providerTxID, reason string) error {
	if m.service == nil {
		m.logger.Warnw("email service not configured, skipping reconciliation alert", "provider", provider)
		return ErrEmailServiceNotConfigured
	}
	return m.service.SendReconciliationAlertEmail(provider, providerTxID, reason)
}
