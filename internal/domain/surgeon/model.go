package surgeon

import (
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

// Details maps to the surgeon_details table, keyed 1:1 by the surgeon's
// profile id. It is a public directory entry: readable by anyone, writable
// only by the owning surgeon.
type Details struct {
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	Specialty       string    `db:"specialty" json:"specialty"`
	Hospital        *string   `db:"hospital" json:"hospital,omitempty"`
	YearsExperience *int      `db:"years_experience" json:"years_experience,omitempty"`
	Certifications  *string   `db:"certifications" json:"certifications,omitempty"`
	ConsultationFee *float64  `db:"consultation_fee" json:"consultation_fee,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func (d *Details) Attrs() authz.RowAttrs {
	return authz.RowAttrs{UserID: d.UserID}
}
