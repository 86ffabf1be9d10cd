package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

// DeliveryError marks a mail transport failure. The caller does not
// retry; the next scheduled run attempts delivery again.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

// SMTPMailer sends HTML email over plain SMTP.
type SMTPMailer struct {
	cfg Config
}

func New(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(recipients []string, subject, htmlBody string) error {
	if !m.cfg.Enabled {
		log.Info().Str("subject", subject).Msg("mailer disabled, dropping message")
		return nil
	}
	if len(recipients) == 0 {
		return &DeliveryError{Err: fmt.Errorf("no recipients configured")}
	}

	msg := buildMessage(m.cfg.From, recipients, subject, htmlBody)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, auth, m.cfg.From, recipients, []byte(msg)); err != nil {
		return &DeliveryError{Err: err}
	}
	return nil
}

func buildMessage(from string, recipients []string, subject, htmlBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}
