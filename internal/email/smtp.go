package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider sends emails through an SMTP server.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(cfg *SMTPConfig) (*SMTPProvider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Port)
	}

	return &SMTPProvider{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (p *SMTPProvider) from() string {
	if p.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", p.config.FromName, p.config.FromEmail)
	}
	return p.config.FromEmail
}

func (p *SMTPProvider) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from())
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.Body != "" {
		m.SetBody("text/plain", msg.Body)
	}
	if msg.HTMLBody != "" {
		if msg.Body != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		} else {
			m.SetBody("text/html", msg.HTMLBody)
		}
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendResetCode(to, code string, validMinutes int) error {
	html, err := renderTemplate("reset_code", map[string]interface{}{
		"Code":         code,
		"ValidMinutes": validMinutes,
	})
	if err != nil {
		return err
	}

	return p.Send(&Message{
		To:       []string{to},
		Subject:  "Réinitialisation de votre mot de passe",
		Body:     fmt.Sprintf("Votre code de réinitialisation est : %s. Il expire dans %d minutes.", code, validMinutes),
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendWelcome(to, displayName string) error {
	html, err := renderTemplate("welcome", map[string]interface{}{
		"Name": displayName,
	})
	if err != nil {
		return err
	}

	return p.Send(&Message{
		To:       []string{to},
		Subject:  "Bienvenue sur GrowCoach",
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendCompanyVerified(to, companyName string) error {
	html, err := renderTemplate("company_verified", map[string]interface{}{
		"CompanyName": companyName,
	})
	if err != nil {
		return err
	}

	return p.Send(&Message{
		To:       []string{to},
		Subject:  "Votre entreprise a été vérifiée",
		HTMLBody: html,
	})
}
