package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/domain/user"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Mailer sends account notifications. With no SMTP host configured it only logs.
type Mailer struct {
	cfg  SMTPConfig
	log  *logrus.Logger
	send func(e *email.Email) error
}

func NewMailer(cfg SMTPConfig, log *logrus.Logger) *Mailer {
	m := &Mailer{cfg: cfg, log: log}
	if cfg.Host != "" {
		var auth smtp.Auth
		if cfg.User != "" {
			auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
		}
		addr := net.JoinHostPort(cfg.Host, cfg.Port)
		m.send = func(e *email.Email) error { return e.Send(addr, auth) }
	}
	return m
}

func welcomeMessage(from string, u *user.User) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{u.Email}
	e.Subject = "Welcome to your loan account"
	e.Text = []byte(fmt.Sprintf(
		"Hello %s,\n\nYour account %q has been created. You can now sign in and apply for a loan.\n",
		u.FullName, u.Username))
	return e
}

func (m *Mailer) SendWelcome(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.send == nil {
		m.log.WithFields(logrus.Fields{"user_id": u.ID, "to": u.Email}).Info("smtp not configured, welcome mail skipped")
		return nil
	}
	return m.send(welcomeMessage(m.cfg.From, u))
}
