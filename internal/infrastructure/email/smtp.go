package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromAddress  string
	FromName     string
	AdminAddress string // Destination for moderation and payout alerts
}

// SMTPEmailService delivers admin alert mails for events that need a human:
// pending moderation queues, withdrawal requests, reconciliation mismatches.
type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendWithdrawalRequestedEmail(withdrawalID, userID, amount, network, address string) error {
	subject := fmt.Sprintf("Withdrawal request %s awaiting review", withdrawalID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Withdrawal Request</h2>
			<p>A new withdrawal is waiting for review.</p>
			<ul>
				<li>Request: %s</li>
				<li>User: %s</li>
				<li>Amount: %s</li>
				<li>Network: %s</li>
				<li>Address: %s</li>
			</ul>
			<p>The amount has been reserved on the user's wallet until the request is approved or rejected.</p>
		</body>
		</html>
	`, withdrawalID, userID, amount, network, address)

	plainBody := fmt.Sprintf(`
Withdrawal Request

A new withdrawal is waiting for review.

Request: %s
User: %s
Amount: %s
Network: %s
Address: %s

The amount has been reserved on the user's wallet until the request is approved or rejected.
	`, withdrawalID, userID, amount, network, address)

	return s.sendEmail(s.config.AdminAddress, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendAdPendingReviewEmail(adID, title, advertiserID string) error {
	subject := fmt.Sprintf("Ad %s submitted for review", adID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ad Pending Review</h2>
			<p>A new ad has entered the moderation queue.</p>
			<ul>
				<li>Ad: %s</li>
				<li>Title: %s</li>
				<li>Advertiser: %s</li>
			</ul>
			<p>The campaign budget is reserved and the ad will not deliver until it is approved.</p>
		</body>
		</html>
	`, adID, title, advertiserID)

	plainBody := fmt.Sprintf(`
Ad Pending Review

A new ad has entered the moderation queue.

Ad: %s
Title: %s
Advertiser: %s

The campaign budget is reserved and the ad will not deliver until it is approved.
	`, adID, title, advertiserID)

	return s.sendEmail(s.config.AdminAddress, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendBotPendingReviewEmail(botID, username, ownerID string) error {
	subject := fmt.Sprintf("Bot @%s submitted for review", username)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Bot Pending Review</h2>
			<p>A new bot has registered and is waiting for approval.</p>
			<ul>
				<li>Bot: %s</li>
				<li>Username: @%s</li>
				<li>Owner: %s</li>
			</ul>
		</body>
		</html>
	`, botID, username, ownerID)

	plainBody := fmt.Sprintf(`
Bot Pending Review

A new bot has registered and is waiting for approval.

Bot: %s
Username: @%s
Owner: %s
	`, botID, username, ownerID)

	return s.sendEmail(s.config.AdminAddress, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendReconciliationAlertEmail(provider, providerTxID, reason string) error {
	subject := fmt.Sprintf("Unmatched %s callback needs reconciliation", provider)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Reconciliation Alert</h2>
			<p>A payment callback could not be matched to a transaction and was stored for manual review.</p>
			<ul>
				<li>Provider: %s</li>
				<li>Provider transaction: %s</li>
				<li>Reason: %s</li>
			</ul>
			<p>The raw payload is available in the reconciliation table.</p>
		</body>
		</html>
	`, provider, providerTxID, reason)

	plainBody := fmt.Sprintf(`
Reconciliation Alert

A payment callback could not be matched to a transaction and was stored for manual review.

Provider: %s
Provider transaction: %s
Reason: %s

The raw payload is available in the reconciliation table.
	`, provider, providerTxID, reason)

	return s.sendEmail(s.config.AdminAddress, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
