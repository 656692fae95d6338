package authorize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roxydental/roxydental_backend/pkg/reqctx"
)

type stubClaims struct {
	role string
}

func (s stubClaims) GetUserID() uuid.UUID    { return uuid.New() }
func (s stubClaims) GetRole() string         { return s.role }
func (s stubClaims) GetTokenID() string      { return "jti" }
func (s stubClaims) GetExpiresAt() time.Time { return time.Now().Add(time.Hour) }

func TestRoleFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantRole Role
		wantErr  bool
	}{
		{"doctor claims", reqctx.WithClaims(context.Background(), stubClaims{role: "DOKTER"}), RoleDokter, false},
		{"no claims", context.Background(), "", true},
		{"empty role", reqctx.WithClaims(context.Background(), stubClaims{}), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := RoleFromContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("RoleFromContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if role != tt.wantRole {
				t.Errorf("RoleFromContext() = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestEnforceFromContext(t *testing.T) {
	auth := seededAuthorization(t)

	nurse := reqctx.WithClaims(context.Background(), stubClaims{role: "PERAWAT"})
	if err := EnforceFromContext(nurse, auth, ResourceUser, ActionList); !errors.Is(err, ErrForbidden) {
		t.Errorf("EnforceFromContext() error = %v, want ErrForbidden", err)
	}

	if err := EnforceFromContext(context.Background(), auth, ResourceUser, ActionList); !errors.Is(err, ErrNoSubjectInContext) {
		t.Errorf("EnforceFromContext() error = %v, want ErrNoSubjectInContext", err)
	}
}
