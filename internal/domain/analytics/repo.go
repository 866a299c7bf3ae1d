package analytics

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *VolumeSample) error
	GetByID(ctx context.Context, id uuid.UUID) (*VolumeSample, error)
	Update(ctx context.Context, v *VolumeSample) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*VolumeSample, int, error)
}
