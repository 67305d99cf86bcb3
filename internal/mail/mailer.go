package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"chavecerta-backend/internal/config"
)

// Mailer delivers account notifications. Activation mail carries the
// credential pair (uid, token) the client posts back to /auth/activate.
type Mailer interface {
	SendActivationEmail(to, username, uid, token string) error
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendActivationEmail(to, username, uid, token string) error {
	link := fmt.Sprintf("%s/auth/activate?uid=%s&token=%s", m.cfg.SMTP.BaseURL, uid, token)

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Activate your ChaveCerta account\r\n\r\n"+
			"Hello %s,\r\n\r\n"+
			"Confirm your email address to activate your account:\r\n\r\n%s\r\n\r\n"+
			"If you did not register, ignore this message.\r\n",
		m.cfg.SMTP.From, to, username, link)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTP.Host, m.cfg.SMTP.Port)
	auth := smtp.PlainAuth("", m.cfg.SMTP.User, m.cfg.SMTP.Password, m.cfg.SMTP.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.SMTP.From, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send activation email: %w", err)
	}
	return nil
}

// MockMailer prints the activation credentials to the log instead of
// sending mail. Used when SMTP is not configured.
type MockMailer struct{}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendActivationEmail(to, username, uid, token string) error {
	log.Printf("[Mail] MOCK activation email to %s (user %s): uid=%s token=%s", to, username, uid, token)
	return nil
}
