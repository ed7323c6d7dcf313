package notify

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/domain/user"
)

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSendWelcome_BuildsMessage(t *testing.T) {
	var got *email.Email
	m := NewMailer(SMTPConfig{From: "loans@example.com"}, quiet())
	m.send = func(e *email.Email) error { got = e; return nil }

	u := &user.User{ID: 1, Username: "zoe", Email: "zoe@example.com", FullName: "Zoe Z"}
	if err := m.SendWelcome(context.Background(), u); err != nil {
		t.Fatalf("SendWelcome: %v", err)
	}
	if got == nil || got.From != "loans@example.com" || len(got.To) != 1 || got.To[0] != "zoe@example.com" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if !strings.Contains(string(got.Text), "Zoe Z") || !strings.Contains(string(got.Text), `"zoe"`) {
		t.Fatalf("unexpected body: %s", got.Text)
	}
}

func TestSendWelcome_NoSMTPIsNoop(t *testing.T) {
	m := NewMailer(SMTPConfig{}, quiet())
	if err := m.SendWelcome(context.Background(), &user.User{Email: "a@b.c"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSendWelcome_PropagatesFailure(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "smtp.invalid", Port: "25"}, quiet())
	boom := errors.New("smtp down")
	m.send = func(*email.Email) error { return boom }
	if err := m.SendWelcome(context.Background(), &user.User{Email: "a@b.c"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
