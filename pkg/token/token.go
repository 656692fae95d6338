package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/roxydental/roxydental_backend/config"
)

type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Manager issues and verifies HS256 JWTs bound to one issuer and audience.
type Manager struct {
	cfg    Config
	parser *jwt.Parser
	now    func() time.Time
}

func New(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("%w: secret is required", ErrMisconfigured)
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("%w: issuer is required", ErrMisconfigured)
	}
	if cfg.Audience == "" {
		return nil, fmt.Errorf("%w: audience is required", ErrMisconfigured)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}

	m := &Manager{cfg: cfg, now: time.Now}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m, nil
}

// NewManager creates a token manager from central config.
func NewManager(cfg *config.Config) (*Manager, error) {
	j := cfg.Authentication.JWT
	return New(Config{
		Secret:   []byte(j.Secret),
		Issuer:   j.Issuer,
		Audience: j.Audience,
		TTL:      time.Duration(j.TTLHours) * time.Hour,
	})
}

func (m *Manager) TTL() time.Duration { return m.cfg.TTL }

// Issue signs a token for sub that expires after the configured TTL.
func (m *Manager) Issue(sub Subject) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		ID:       sub.ID.String(),
		Username: sub.Username,
		Email:    sub.Email,
		Role:     sub.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub.ID.String(),
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tok, err := m.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	})
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	case !tok.Valid:
		return nil, ErrInvalid
	case claims.GetUserID() == uuid.Nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalid, errNoSubject)
	}
	return claims, nil
}
