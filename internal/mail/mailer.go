package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers outbound mail. The API only ever sends confirmation
// codes, so a single Send method is enough.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Host   string
	Port   int
	User   string
	Pass   string
	Sender string
}

func NewSMTPMailer(host string, port int, user, pass, sender string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, Sender: sender}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.Sender, to, subject, body,
	))

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}

	if err := smtp.SendMail(addr, auth, m.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes mail to the log instead of delivering it. Used in
// development when no SMTP relay is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.Logger.Info("outbound mail (not delivered)",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
