package vitals

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *VitalSign) error
	GetByID(ctx context.Context, id uuid.UUID) (*VitalSign, error)
	Update(ctx context.Context, v *VitalSign) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*VitalSign, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSign, int, error)
}
