package patient

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

// Details maps to the patient_details table, keyed 1:1 by the patient's
// profile id. The three info bags are semi-structured JSON owned entirely
// by the patient; the row is destroyed with the owning profile.
type Details struct {
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	PersonalInfo  json.RawMessage `db:"personal_info" json:"personal_info,omitempty"`
	PhysicalInfo  json.RawMessage `db:"physical_info" json:"physical_info,omitempty"`
	LifestyleInfo json.RawMessage `db:"lifestyle_info" json:"lifestyle_info,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

func (d *Details) Attrs() authz.RowAttrs {
	return authz.RowAttrs{UserID: d.UserID}
}
