package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

// VolumeSample maps to the historical_surgical_data table: one weekly
// surgical-volume aggregate per hospital and specialty. Samples are
// independent of profiles and feed external forecasting only.
type VolumeSample struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Hospital  string    `db:"hospital" json:"hospital"`
	Specialty string    `db:"specialty" json:"specialty"`
	Season    *string   `db:"season" json:"season,omitempty"`
	WeekStart time.Time `db:"week_start" json:"week_start"`
	CaseCount int       `db:"case_count" json:"case_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Attrs returns empty row attributes: every policy on this table is
// role-only.
func (v *VolumeSample) Attrs() authz.RowAttrs {
	return authz.RowAttrs{}
}

var validSeasons = map[string]bool{
	"spring": true, "summer": true, "fall": true, "winter": true,
}
