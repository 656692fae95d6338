package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
)

// RequirePermission checks the caller's role against (resource, action).
// It must run after AuthRequired.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		err := authorize.EnforceFromContext(c.Context(), auth, resource, action)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, authorize.ErrNoSubjectInContext):
			return response.Unauthorized("Token tidak ditemukan")
		case errors.Is(err, authorize.ErrForbidden):
			return response.Forbidden("Akses ditolak")
		default:
			return err
		}
	}
}
