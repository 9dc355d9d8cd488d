package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"condotel/config"
)

// Mailer delivers transactional email. Delivery is fire-and-forget from the
// caller's perspective: failures are logged, never allowed to block a state
// transition.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	config *config.Config
}

func New(cfg *config.Config) Mailer {
	return &smtpMailer{
		config: cfg,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	cfg := m.config.SMTP

	if cfg.Host == "" || cfg.Port == "" || cfg.Username == "" {
		log.Warn().Str("to", to).Str("subject", subject).Msg("SMTP not configured, skipping email delivery")

		return nil
	}

	subject = sanitizeHeader(subject)
	from := fmt.Sprintf("%s <%s>", sanitizeHeader(cfg.FromName), cfg.Username)

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	if err := smtp.SendMail(addr, auth, cfg.Username, []string{to}, []byte(msg)); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("Failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	return strings.TrimSpace(s)
}
