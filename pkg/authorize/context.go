package authorize

import (
	"context"
	"errors"

	"github.com/roxydental/roxydental_backend/pkg/reqctx"
)

var ErrNoSubjectInContext = errors.New("no subject found in context")

// RoleFromContext returns the role of the authenticated caller.
func RoleFromContext(ctx context.Context) (Role, error) {
	role := Role(reqctx.RoleFromContext(ctx))
	if role == "" {
		return "", ErrNoSubjectInContext
	}
	return role, nil
}

// EnforceFromContext checks the caller's role against object and action.
func EnforceFromContext(ctx context.Context, auth IAuthorization, object Resource, action Action) error {
	role, err := RoleFromContext(ctx)
	if err != nil {
		return err
	}
	return auth.MustEnforce(ctx, role, object, action)
}
