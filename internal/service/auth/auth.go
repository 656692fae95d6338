package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/email"
	"github.com/roxydental/roxydental_backend/pkg/redis"
	"github.com/roxydental/roxydental_backend/pkg/token"
	"github.com/roxydental/roxydental_backend/pkg/util/codes"
	"github.com/roxydental/roxydental_backend/pkg/util/password"
)

func keyReset(addr string) string { return "reset:" + strings.ToLower(addr) }

func keyRevoked(jti string) string { return "revoked:" + jti }

func keyLoginFail(username string) string { return "login:fail:" + strings.ToLower(username) }

func keyLoginLock(username string) string { return "login:lock:" + strings.ToLower(username) }

// Store is the short-lived key/value storage auth relies on. *redis.KV implements it.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Del(ctx context.Context, key string) error
}

type Config struct {
	ResetTTL         time.Duration
	ResetURL         string
	DefaultRole      model.Role
	MaxLoginAttempts int64
	LockDuration     time.Duration

	// RegistrationClosed makes Register fail with ErrRegistrationClosed.
	RegistrationClosed bool
}

func FromCentralConfig(c config.AuthenticationConfig) Config {
	cfg := Config{
		ResetTTL:         time.Duration(c.ResetTokenTTLMinutes) * time.Minute,
		ResetURL:         c.ResetURL,
		DefaultRole:      model.Role(c.DefaultRole),
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,

		RegistrationClosed: !c.PublicRegistration,
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 30 * time.Minute
	}
	if !cfg.DefaultRole.Valid() {
		cfg.DefaultRole = model.RoleDokter
	}
	return cfg
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Username string
	Password string
	Role     model.Role
}

type RegisterRequest struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	Phone          string
	Specialization *string
}

type ResetPasswordRequest struct {
	Email       string
	Token       string
	NewPassword string
}

type Result struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Result, error)
	Register(ctx context.Context, req RegisterRequest) (*Result, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Logout(ctx context.Context, claims *token.Claims) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	db     *gorm.DB
	tokens *token.Manager
	hasher *password.Hasher
	store  Store
	mailer email.Sender
	codes  *codes.Generator
	cfg    Config
	now    func() time.Time
}

func New(
	db *gorm.DB,
	tokens *token.Manager,
	hasher *password.Hasher,
	store Store,
	mailer email.Sender,
	gen *codes.Generator,
	cfg Config,
) Service {
	return &authService{
		db:     db,
		tokens: tokens,
		hasher: hasher,
		store:  store,
		mailer: mailer,
		codes:  gen,
		cfg:    cfg,
		now:    time.Now,
	}
}

// ---------------------------------------------------------------------------
// Login / Register
// ---------------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	username := strings.TrimSpace(req.Username)

	locked, err := s.store.Exists(ctx, keyLoginLock(username))
	if err != nil {
		return nil, fmt.Errorf("check login lock: %w", err)
	}
	if locked {
		return nil, ErrAccountLocked
	}

	var u model.User
	if err := s.db.WithContext(ctx).Take(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Verify(u.PasswordHash, req.Password); err != nil {
		s.recordFailedLogin(ctx, username)
		return nil, ErrInvalidCredentials
	}
	if u.Role != req.Role {
		return nil, ErrRoleMismatch
	}
	if !u.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.store.Del(ctx, keyLoginFail(username)); err != nil {
		slog.WarnContext(ctx, "reset login failures", "username", username, "error", err)
	}
	s.rehashIfNeeded(ctx, &u, req.Password)

	return s.issue(&u)
}

func (s *authService) recordFailedLogin(ctx context.Context, username string) {
	n, err := s.store.Incr(ctx, keyLoginFail(username), s.cfg.LockDuration)
	if err != nil {
		slog.WarnContext(ctx, "record login failure", "username", username, "error", err)
		return
	}
	if s.cfg.MaxLoginAttempts > 0 && n >= s.cfg.MaxLoginAttempts {
		if err := s.store.Set(ctx, keyLoginLock(username), "1", s.cfg.LockDuration); err != nil {
			slog.WarnContext(ctx, "lock account", "username", username, "error", err)
			return
		}
		_ = s.store.Del(ctx, keyLoginFail(username))
		slog.WarnContext(ctx, "account locked after failed logins", "username", username, "attempts", n)
	}
}

func (s *authService) rehashIfNeeded(ctx context.Context, u *model.User, plain string) {
	if !s.hasher.NeedsRehash(u.PasswordHash) {
		return
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		slog.WarnContext(ctx, "rehash password", "user_id", u.ID, "error", err)
		return
	}
	if err := s.db.WithContext(ctx).Model(u).Update("password_hash", hash).Error; err != nil {
		slog.WarnContext(ctx, "store rehashed password", "user_id", u.ID, "error", err)
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	if s.cfg.RegistrationClosed {
		return nil, ErrRegistrationClosed
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var exists int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&exists).Error
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists > 0 {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           s.cfg.DefaultRole,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(&u)
}

func (s *authService) issue(u *model.User) (*Result, error) {
	signed, _, err := s.tokens.Issue(token.Subject{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Result{Token: signed, User: u}, nil
}

// ---------------------------------------------------------------------------
// Password reset
// ---------------------------------------------------------------------------

// ForgotPassword never reveals whether the email is registered.
func (s *authService) ForgotPassword(ctx context.Context, addr string) error {
	addr = strings.ToLower(strings.TrimSpace(addr))

	var u model.User
	if err := s.db.WithContext(ctx).Take(&u, "email = ?", addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.DebugContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	tok, err := s.codes.ResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.store.Set(ctx, keyReset(addr), tok, s.cfg.ResetTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	msg, err := email.BuildPasswordResetEmail(email.PasswordResetData{
		FullName:      u.FullName,
		Email:         u.Email,
		ResetURL:      s.cfg.ResetURL,
		Token:         tok,
		ExpiryMinutes: int(s.cfg.ResetTTL / time.Minute),
	})
	if err != nil {
		return fmt.Errorf("build reset email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// The stored token stays valid until it expires.
		slog.ErrorContext(ctx, "send reset email", "user_id", u.ID, "error", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	addr := strings.ToLower(strings.TrimSpace(req.Email))

	stored, err := s.store.GetDel(ctx, keyReset(addr))
	if errors.Is(err, redis.ErrKeyNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("load reset token: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.Token)) != 1 {
		return ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", addr).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidResetToken
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	u, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(u.PasswordHash, current); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(u).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Take(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Logout revokes the token's jti until the token would have expired anyway.
func (s *authService) Logout(ctx context.Context, claims *token.Claims) error {
	ttl := claims.TTL(s.now())
	if ttl <= 0 || claims.GetTokenID() == "" {
		return nil
	}
	if err := s.store.Set(ctx, keyRevoked(claims.GetTokenID()), "1", ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.store.Exists(ctx, keyRevoked(jti))
}
