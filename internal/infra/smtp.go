package infra

import (
	"fmt"
	"net/smtp"

	"github.com/claudioasousa/Espetaria-PRO/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending operational mail
// (cash-close summaries).
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendReport mails a plain-text report to a single recipient.
func (m *Mailer) SendReport(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
