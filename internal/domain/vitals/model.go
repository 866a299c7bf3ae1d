package vitals

import (
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

// VitalSign maps to the vital_signs table: one measurement event for a
// patient. Rows are append-mostly and cascade away with the owning
// profile.
type VitalSign struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patient_id"`
	RecordedBy       *uuid.UUID `db:"recorded_by" json:"recorded_by,omitempty"`
	HeartRate        *int       `db:"heart_rate" json:"heart_rate,omitempty"`
	SystolicBP       *int       `db:"systolic_bp" json:"systolic_bp,omitempty"`
	DiastolicBP      *int       `db:"diastolic_bp" json:"diastolic_bp,omitempty"`
	Temperature      *float64   `db:"temperature" json:"temperature,omitempty"`
	OxygenSaturation *int       `db:"oxygen_saturation" json:"oxygen_saturation,omitempty"`
	RespiratoryRate  *int       `db:"respiratory_rate" json:"respiratory_rate,omitempty"`
	Note             *string    `db:"note" json:"note,omitempty"`
	MeasuredAt       time.Time  `db:"measured_at" json:"measured_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

func (v *VitalSign) Attrs() authz.RowAttrs {
	return authz.RowAttrs{PatientID: v.PatientID}
}
