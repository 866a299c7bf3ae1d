package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

// Profile maps to the profiles table. The id is shared with the identity
// store: exactly one profile exists per identity, created by provisioning
// when the identity is registered.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      string    `db:"role" json:"role"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Attrs returns the identity columns the policy set keys on.
func (p *Profile) Attrs() authz.RowAttrs {
	return authz.RowAttrs{ProfileID: p.ID}
}

// IdentityCreated is the signup event emitted by the identity store.
// Metadata may carry optional "full_name" and "role" fields.
type IdentityCreated struct {
	ID       uuid.UUID         `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata"`
}
