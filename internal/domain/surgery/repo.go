package surgery

import (
	"context"

	"github.com/google/uuid"
)

type CaseRepository interface {
	Create(ctx context.Context, sc *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	Update(ctx context.Context, sc *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Case, int, error)
	// ListForParticipant returns cases where the given profile is either
	// the patient or the assigned surgeon.
	ListForParticipant(ctx context.Context, id uuid.UUID, limit, offset int) ([]*Case, int, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, h *History) error
	GetByID(ctx context.Context, id uuid.UUID) (*History, error)
	Update(ctx context.Context, h *History) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*History, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*History, int, error)
}
