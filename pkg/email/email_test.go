package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/roxydental/roxydental_backend/config"
)

func TestBuildPasswordResetEmail(t *testing.T) {
	msg, err := BuildPasswordResetEmail(PasswordResetData{
		FullName:      "Drg. Siti",
		Email:         "siti@roxydental.id",
		ResetURL:      "https://app.roxydental.id/reset-password",
		Token:         "abc123",
		ExpiryMinutes: 15,
	})
	if err != nil {
		t.Fatalf("BuildPasswordResetEmail() error = %v", err)
	}

	if len(msg.To) != 1 || msg.To[0] != "siti@roxydental.id" {
		t.Errorf("To = %v", msg.To)
	}
	wantLink := "https://app.roxydental.id/reset-password?email=siti%40roxydental.id&token=abc123"
	if !strings.Contains(msg.TextBody, wantLink) {
		t.Errorf("TextBody missing link %q:\n%s", wantLink, msg.TextBody)
	}
	if !strings.Contains(msg.TextBody, "15 menit") {
		t.Errorf("TextBody missing expiry")
	}
	// html/template escapes & inside attributes.
	if !strings.Contains(msg.HTMLBody, "token=abc123") || !strings.Contains(msg.HTMLBody, "Drg. Siti") {
		t.Errorf("HTMLBody not rendered: %s", msg.HTMLBody)
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr bool
	}{
		{"valid", "noreply@roxydental.id", Message{To: []string{"a@b.id"}, Subject: "s", TextBody: "t"}, false},
		{"missing from", "", Message{To: []string{"a@b.id"}, Subject: "s", TextBody: "t"}, true},
		{"blank recipients", "x@y.id", Message{To: []string{" "}, Subject: "s", TextBody: "t"}, true},
		{"missing subject", "x@y.id", Message{To: []string{"a@b.id"}, TextBody: "t"}, true},
		{"missing body", "x@y.id", Message{To: []string{"a@b.id"}, Subject: "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compose(tt.from, tt.msg)
			if (err != nil) != tt.wantErr {
				t.Errorf("compose() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("compose() error = %v, want ErrInvalidMessage", err)
			}
		})
	}
}

func TestClient_Send(t *testing.T) {
	msg := Message{To: []string{"a@b.id"}, Subject: "s", TextBody: "t"}

	disabled := New(Config{From: "x@y.id"})
	if err := disabled.Send(context.Background(), msg); !errors.Is(err, ErrDisabled) {
		t.Errorf("Send() on disabled client error = %v, want ErrDisabled", err)
	}

	c := New(Config{Enabled: true, From: "x@y.id"})
	var sent int
	c.send = func(*gomail.Message) error { sent++; return nil }
	if err := c.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sent != 1 {
		t.Errorf("send called %d times, want 1", sent)
	}

	boom := errors.New("smtp down")
	c.send = func(*gomail.Message) error { return boom }
	err := c.Send(context.Background(), msg)
	var sendErr *SendError
	if !errors.As(err, &sendErr) || !errors.Is(err, boom) {
		t.Errorf("Send() error = %v, want SendError wrapping %v", err, boom)
	}
}

func TestFromCentralConfig(t *testing.T) {
	cfg := FromCentralConfig(config.EmailConfig{
		Enabled: true,
		From:    " noreply@roxydental.id ",
		SMTP:    config.SMTPConfig{Host: "smtp.roxydental.id", TimeoutSeconds: 5},
	})
	if cfg.From != "noreply@roxydental.id" {
		t.Errorf("From = %q", cfg.From)
	}
	if cfg.Port != 587 {
		t.Errorf("Port = %d, want 587", cfg.Port)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if got := New(Config{}).cfg.Timeout; got != defaultTimeout {
		t.Errorf("New() timeout = %v, want %v", got, defaultTimeout)
	}
}
