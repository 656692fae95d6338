package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(Config{
		Secret:   []byte(testSecret),
		Issuer:   "roxydental-api",
		Audience: "roxydental-client",
		TTL:      7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Secret: []byte(testSecret), Issuer: "i", Audience: "a"}, false},
		{"missing secret", Config{Issuer: "i", Audience: "a"}, true},
		{"missing issuer", Config{Secret: []byte(testSecret), Audience: "a"}, true},
		{"missing audience", Config{Secret: []byte(testSecret), Issuer: "i"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	sub := Subject{ID: uuid.New(), Username: "drg.sari", Email: "sari@roxy.id", Role: "DOKTER"}

	signed, issued, err := m.Issue(sub)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if strings.Count(signed, ".") != 2 {
		t.Fatalf("Issue() returned malformed token %q", signed)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.GetUserID() != sub.ID {
		t.Errorf("GetUserID() = %v, want %v", claims.GetUserID(), sub.ID)
	}
	if claims.Role != "DOKTER" || claims.Username != "drg.sari" || claims.Email != "sari@roxy.id" {
		t.Errorf("Verify() claims = %+v", claims)
	}
	if claims.GetTokenID() == "" || claims.GetTokenID() != issued.GetTokenID() {
		t.Errorf("GetTokenID() = %q, want %q", claims.GetTokenID(), issued.GetTokenID())
	}
	if got := claims.GetExpiresAt().Sub(issued.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("token lifetime = %v, want 168h", got)
	}
}

func TestVerify_Rejects(t *testing.T) {
	m := newTestManager(t)
	signed, _, err := m.Issue(Subject{ID: uuid.New(), Role: "PERAWAT"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other, err := New(Config{Secret: []byte(testSecret), Issuer: "someone-else", Audience: "roxydental-client"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	foreign, _, _ := other.Issue(Subject{ID: uuid.New()})

	expired := newTestManager(t)
	expired.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	stale, _, _ := expired.Issue(Subject{ID: uuid.New()})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", signed[:len(signed)-2] + "xx"},
		{"wrong issuer", foreign},
		{"expired", stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Verify() error = %v, want ErrInvalid", err)
			}
		})
	}
}
