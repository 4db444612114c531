package email

import "growcoach_backend/internal/logger"

// NoopProvider logs instead of sending. Used when SMTP is not
// configured (local development, tests).
type NoopProvider struct{}

func (NoopProvider) Send(msg *Message) error {
	logger.Info("email suppressed (no SMTP configured)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (NoopProvider) SendResetCode(to, code string, validMinutes int) error {
	logger.Info("reset code email suppressed (no SMTP configured)", "to", to)
	return nil
}

func (NoopProvider) SendWelcome(to, displayName string) error {
	logger.Info("welcome email suppressed (no SMTP configured)", "to", to)
	return nil
}

func (NoopProvider) SendCompanyVerified(to, companyName string) error {
	logger.Info("verification email suppressed (no SMTP configured)", "to", to)
	return nil
}
