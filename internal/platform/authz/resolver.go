package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/auth"
)

// RoleResolver looks up the role stored on a profile. The lookup is not
// itself subject to policy evaluation: a caller always has select access to
// their own profile row, so routing every role lookup through this single
// accessor preserves that rule and avoids recursive policy evaluation.
type RoleResolver interface {
	RoleOf(ctx context.Context, id uuid.UUID) (Role, error)
}

// CallerResolver turns the authenticated subject on a request context into
// a Caller with its role resolved.
type CallerResolver struct {
	roles RoleResolver
}

func NewCallerResolver(roles RoleResolver) *CallerResolver {
	return &CallerResolver{roles: roles}
}

// Resolve returns the caller for the request. A missing identity yields
// ErrUnauthenticated; an identity without a profile is treated as absent
// and yields ErrNotFound.
func (r *CallerResolver) Resolve(ctx context.Context) (Caller, error) {
	id, ok := auth.CallerIDFromContext(ctx)
	if !ok {
		return Caller{}, ErrUnauthenticated
	}
	role, err := r.roles.RoleOf(ctx, id)
	if err != nil {
		return Caller{}, fmt.Errorf("resolve caller role: %w", ErrNotFound)
	}
	return Caller{ID: id, Role: role}, nil
}
