package surgery

import (
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

// Case maps to the surgical_cases table. A case belongs to a patient and
// optionally references the assigned surgeon; the surgeon reference is
// nulled when the surgeon's account is removed so the case survives.
type Case struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	SurgeonID     *uuid.UUID `db:"surgeon_id" json:"surgeon_id,omitempty"`
	ProcedureName string     `db:"procedure_name" json:"procedure_name"`
	Status        string     `db:"status" json:"status"`
	Priority      *string    `db:"priority" json:"priority,omitempty"`
	ScheduledDate *time.Time `db:"scheduled_date" json:"scheduled_date,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

func (sc *Case) Attrs() authz.RowAttrs {
	return authz.RowAttrs{PatientID: sc.PatientID, SurgeonID: sc.SurgeonID}
}

// History maps to the surgical_history table: a past-procedure record for
// a patient, optionally attributed to a surgeon.
type History struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	SurgeonID     *uuid.UUID `db:"surgeon_id" json:"surgeon_id,omitempty"`
	ProcedureName string     `db:"procedure_name" json:"procedure_name"`
	PerformedAt   *time.Time `db:"performed_at" json:"performed_at,omitempty"`
	Outcome       *string    `db:"outcome" json:"outcome,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

func (h *History) Attrs() authz.RowAttrs {
	return authz.RowAttrs{PatientID: h.PatientID}
}

// Case lifecycle statuses.
const (
	StatusProposed   = "proposed"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var validStatuses = map[string]bool{
	StatusProposed: true, StatusScheduled: true, StatusInProgress: true,
	StatusCompleted: true, StatusCancelled: true,
}

var validPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "emergency": true,
}
