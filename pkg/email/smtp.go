package email

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/roxydental/roxydental_backend/config"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	Enabled  bool
	From     string
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
	Timeout  time.Duration
}

func FromCentralConfig(c config.EmailConfig) Config {
	cfg := Config{
		Enabled:  c.Enabled,
		From:     strings.TrimSpace(c.From),
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		TLS:      c.SMTP.UseTLS,
		Timeout:  time.Duration(c.SMTP.TimeoutSeconds) * time.Second,
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return cfg
}

// Client sends mail over SMTP. A disabled client rejects every message with ErrDisabled.
type Client struct {
	cfg  Config
	send func(*gomail.Message) error
}

func NewFromCentral(cfg config.EmailConfig) *Client {
	return New(FromCentralConfig(cfg))
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{cfg: cfg}
	c.send = func(m *gomail.Message) error { return c.dialer().DialAndSend(m) }
	return c
}

func (c *Client) Enabled() bool { return c.cfg.Enabled }

// Send composes m and hands it to the SMTP server, giving up when ctx ends or
// the configured timeout passes. gomail has no context support, so an abandoned
// dial finishes in the background.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.cfg.Enabled {
		return ErrDisabled
	}

	msg, err := compose(c.cfg.From, m)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.send(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return &SendError{Err: err}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) dialer() *gomail.Dialer {
	d := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.Username, c.cfg.Password)
	// 465 is implicit TLS, anything else upgrades with STARTTLS.
	d.SSL = c.cfg.TLS && c.cfg.Port == 465
	if c.cfg.TLS {
		d.TLSConfig = &tls.Config{ServerName: c.cfg.Host, MinVersion: tls.VersionTLS12}
	}
	return d
}

func compose(from string, m Message) (*gomail.Message, error) {
	if from == "" {
		return nil, invalid("sender address not configured")
	}
	to := m.recipients()
	if len(to) == 0 {
		return nil, invalid("no recipients")
	}
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		return nil, invalid("empty subject")
	}

	text, html := strings.TrimSpace(m.TextBody) != "", strings.TrimSpace(m.HTMLBody) != ""
	if !text && !html {
		return nil, invalid("empty body")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	if text {
		msg.SetBody("text/plain", m.TextBody)
		if html {
			msg.AddAlternative("text/html", m.HTMLBody)
		}
	} else {
		msg.SetBody("text/html", m.HTMLBody)
	}
	return msg, nil
}
