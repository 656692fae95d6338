package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/reqctx"
	"github.com/roxydental/roxydental_backend/pkg/token"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthRequired validates the Bearer JWT, rejects revoked tokens and loads the
// caller. On success the claims are stored in c.Locals(token.CtxKeyClaims)
// and in the request context.
func AuthRequired(tokens *token.Manager, revocations RevocationChecker, db *gorm.DB) fiber.Handler {
	return func(c fiber.Ctx) error {
		raw, ok := token.BearerToken(c)
		if !ok {
			return response.Unauthorized("Token tidak ditemukan")
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			return response.Unauthorized("Token tidak valid")
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.Context(), claims.GetTokenID())
			if err != nil {
				return fmt.Errorf("check token revocation: %w", err)
			}
			if revoked {
				return response.Unauthorized("Token tidak valid")
			}
		}

		var u model.User
		err = db.WithContext(c.Context()).
			Select("id", "role", "is_active").
			Take(&u, "id = ?", claims.GetUserID()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Unauthorized("User tidak ditemukan")
		}
		if err != nil {
			return fmt.Errorf("load token user: %w", err)
		}
		if !u.IsActive {
			return response.Forbidden("Akun tidak aktif")
		}

		// The stored role wins over whatever the token was issued with.
		claims.Role = string(u.Role)

		c.Locals(token.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
