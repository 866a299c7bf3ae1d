package profile

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Profile, int, error)
	// RoleOf reads only the role column. It backs the caller-role
	// resolver and is intentionally not subject to policy evaluation.
	RoleOf(ctx context.Context, id uuid.UUID) (string, error)
}
