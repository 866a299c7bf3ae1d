package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Upsert(ctx context.Context, d *Details) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Details, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Details, int, error)
}
