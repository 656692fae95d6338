package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload: {id, username, email, role} plus registered claims.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Subject describes the user a token is issued for.
type Subject struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     string
}

func (c *Claims) GetUserID() uuid.UUID {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (c *Claims) GetRole() string { return c.Role }

// GetTokenID returns the jti used for revocation.
func (c *Claims) GetTokenID() string { return c.RegisteredClaims.ID }

func (c *Claims) GetExpiresAt() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TTL returns how long the token stays valid from now, never negative.
func (c *Claims) TTL(now time.Time) time.Duration {
	d := c.GetExpiresAt().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
