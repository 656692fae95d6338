package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/testdb"
	"github.com/roxydental/roxydental_backend/pkg/email"
	"github.com/roxydental/roxydental_backend/pkg/redis"
	"github.com/roxydental/roxydental_backend/pkg/token"
	"github.com/roxydental/roxydental_backend/pkg/util/codes"
	"github.com/roxydental/roxydental_backend/pkg/util/password"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key], m.ttl[key] = value, ttl
	return nil
}

func (m *memStore) GetDel(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", redis.ErrKeyNotFound
	}
	delete(m.data, key)
	return v, nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *memStore) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if v, ok := m.data[key]; ok {
		n = int64(len(v))
	}
	n++
	m.data[key] = strings.Repeat("x", int(n))
	return n, nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type outbox struct {
	sent []email.Message
	err  error
}

func (o *outbox) Send(_ context.Context, m email.Message) error {
	o.sent = append(o.sent, m)
	return o.err
}

type harness struct {
	svc    *authService
	db     *gorm.DB
	store  *memStore
	mail   *outbox
	tokens *token.Manager
}

func newHarness(t *testing.T) harness {
	t.Helper()
	db := testdb.New(t)
	tokens, err := token.New(token.Config{Secret: []byte(strings.Repeat("k", 32)), Issuer: "roxydental-api", Audience: "roxydental-client", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token.New() error = %v", err)
	}
	store, mail := newMemStore(), &outbox{}
	cfg := Config{
		ResetTTL: 30 * time.Minute, ResetURL: "https://app.roxydental.id/reset-password",
		DefaultRole: model.RoleDokter, MaxLoginAttempts: 3, LockDuration: 15 * time.Minute,
	}
	hasher := password.NewHasher(password.Config{Algorithm: password.AlgorithmBcrypt, BcryptCost: 4})
	svc := New(db, tokens, hasher, store, mail, codes.NewGenerator(codes.DefaultConfig()), cfg).(*authService)
	return harness{svc: svc, db: db, store: store, mail: mail, tokens: tokens}
}

func (h harness) register(t *testing.T, username string) *Result {
	t.Helper()
	res, err := h.svc.Register(context.Background(), RegisterRequest{
		Username: username, Email: username + "@roxydental.id", Password: "rahasia123",
		FullName: "Dr. " + username, Phone: "081234567890",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return res
}

func TestRegister(t *testing.T) {
	h := newHarness(t)
	res := h.register(t, "dokter1")

	if res.User.Role != model.RoleDokter || res.User.PasswordHash == "rahasia123" {
		t.Errorf("Register() user = %+v", res.User)
	}
	claims, err := h.tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.GetUserID() != res.User.ID || claims.Username != "dokter1" || claims.Role != "DOKTER" {
		t.Errorf("claims = %+v", claims)
	}

	_, err = h.svc.Register(context.Background(), RegisterRequest{Username: "lain", Email: "DOKTER1@roxydental.id", Password: "x"})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() error = %v, wantErr %v", err, ErrUserExists)
	}
}

func TestRegister_Closed(t *testing.T) {
	h := newHarness(t)
	h.svc.cfg.RegistrationClosed = true

	_, err := h.svc.Register(context.Background(), RegisterRequest{
		Username: "dokterbaru", Email: "baru@roxydental.id", Password: "rahasia123", FullName: "Drg. Baru",
	})
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("Register() error = %v, wantErr %v", err, ErrRegistrationClosed)
	}
	var n int64
	h.db.Model(&model.User{}).Where("username = ?", "dokterbaru").Count(&n)
	if n != 0 {
		t.Errorf("users created = %d, want 0", n)
	}
}

func TestFromCentralConfig_Registration(t *testing.T) {
	tests := []struct {
		name       string
		public     bool
		wantClosed bool
	}{
		{"public", true, false},
		{"closed", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromCentralConfig(config.AuthenticationConfig{PublicRegistration: tt.public})
			if cfg.RegistrationClosed != tt.wantClosed {
				t.Errorf("RegistrationClosed = %v, want %v", cfg.RegistrationClosed, tt.wantClosed)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.register(t, "dokter1")
	inactive := h.register(t, "dokter2")
	h.db.Model(inactive.User).Update("is_active", false)

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
	}{
		{"ok", LoginRequest{Username: "dokter1", Password: "rahasia123", Role: model.RoleDokter}, nil},
		{"wrong password", LoginRequest{Username: "dokter1", Password: "salah", Role: model.RoleDokter}, ErrInvalidCredentials},
		{"unknown user", LoginRequest{Username: "siapa", Password: "rahasia123", Role: model.RoleDokter}, ErrInvalidCredentials},
		{"role mismatch", LoginRequest{Username: "dokter1", Password: "rahasia123", Role: model.RolePerawat}, ErrRoleMismatch},
		{"inactive", LoginRequest{Username: "dokter2", Password: "rahasia123", Role: model.RoleDokter}, ErrAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.svc.Login(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && res.Token == "" {
				t.Error("Login() returned empty token")
			}
		})
	}
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.register(t, "dokter1")

	for i := 0; i < 3; i++ {
		if _, err := h.svc.Login(ctx, LoginRequest{Username: "dokter1", Password: "salah", Role: model.RoleDokter}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d error = %v", i, err)
		}
	}
	_, err := h.svc.Login(ctx, LoginRequest{Username: "dokter1", Password: "rahasia123", Role: model.RoleDokter})
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("Login() error = %v, wantErr %v", err, ErrAccountLocked)
	}
}

func TestPasswordReset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.register(t, "dokter1")

	if err := h.svc.ForgotPassword(ctx, "nobody@roxydental.id"); err != nil {
		t.Fatalf("ForgotPassword(unknown) error = %v", err)
	}
	if len(h.mail.sent) != 0 {
		t.Fatalf("unknown email produced %d messages", len(h.mail.sent))
	}

	if err := h.svc.ForgotPassword(ctx, " Dokter1@RoxyDental.id "); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	if len(h.mail.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(h.mail.sent))
	}
	msg := h.mail.sent[0]
	tok := h.store.data[keyReset("dokter1@roxydental.id")]
	if tok == "" || !strings.Contains(msg.TextBody, tok) {
		t.Fatalf("reset email does not carry the stored token")
	}
	if h.store.ttl[keyReset("dokter1@roxydental.id")] != 30*time.Minute {
		t.Errorf("reset token ttl = %v", h.store.ttl[keyReset("dokter1@roxydental.id")])
	}

	err := h.svc.ResetPassword(ctx, ResetPasswordRequest{Email: "dokter1@roxydental.id", Token: "wrong", NewPassword: "baru12345"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("ResetPassword(wrong) error = %v, wantErr %v", err, ErrInvalidResetToken)
	}
	// A wrong guess consumes the token.
	err = h.svc.ResetPassword(ctx, ResetPasswordRequest{Email: "dokter1@roxydental.id", Token: tok, NewPassword: "baru12345"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("ResetPassword(after wrong) error = %v, wantErr %v", err, ErrInvalidResetToken)
	}

	if err := h.svc.ForgotPassword(ctx, "dokter1@roxydental.id"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	tok = h.store.data[keyReset("dokter1@roxydental.id")]
	if err := h.svc.ResetPassword(ctx, ResetPasswordRequest{Email: "dokter1@roxydental.id", Token: tok, NewPassword: "baru12345"}); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if _, err := h.svc.Login(ctx, LoginRequest{Username: "dokter1", Password: "baru12345", Role: model.RoleDokter}); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestForgotPassword_MailFailureIsSwallowed(t *testing.T) {
	h := newHarness(t)
	h.register(t, "dokter1")
	h.mail.err = errors.New("smtp down")

	if err := h.svc.ForgotPassword(context.Background(), "dokter1@roxydental.id"); err != nil {
		t.Errorf("ForgotPassword() error = %v, want nil", err)
	}
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "dokter1")

	if err := h.svc.ChangePassword(ctx, res.User.ID, "salah", "baru12345"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("ChangePassword() error = %v, wantErr %v", err, ErrWrongPassword)
	}
	if err := h.svc.ChangePassword(ctx, uuid.New(), "rahasia123", "baru12345"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ChangePassword() error = %v, wantErr %v", err, ErrUserNotFound)
	}
	if err := h.svc.ChangePassword(ctx, res.User.ID, "rahasia123", "baru12345"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := h.svc.Login(ctx, LoginRequest{Username: "dokter1", Password: "baru12345", Role: model.RoleDokter}); err != nil {
		t.Errorf("Login() with changed password error = %v", err)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.register(t, "dokter1")

	claims, err := h.tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if revoked, _ := h.svc.IsRevoked(ctx, claims.GetTokenID()); revoked {
		t.Fatal("fresh token reported revoked")
	}
	if err := h.svc.Logout(ctx, claims); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if revoked, _ := h.svc.IsRevoked(ctx, claims.GetTokenID()); !revoked {
		t.Error("token not revoked after Logout()")
	}
	if ttl := h.store.ttl[keyRevoked(claims.GetTokenID())]; ttl <= 0 || ttl > time.Hour {
		t.Errorf("revocation ttl = %v", ttl)
	}

	me, err := h.svc.Me(ctx, res.User.ID)
	if err != nil || me.Username != "dokter1" {
		t.Errorf("Me() = %v, %v", me, err)
	}
}
