// Package authz implements row-level access control for the surgicare
// domain tables. Every read and write is admitted or rejected by a set of
// named policies evaluated against the caller's identity and role.
// Policies on the same table and operation combine with logical OR: a row
// is accessible if ANY applicable policy passes. An operation matching no
// policy is denied.
package authz

import (
	"github.com/google/uuid"
)

// Role is an application role stored on the caller's profile.
type Role string

const (
	RolePatient Role = "patient"
	RoleSurgeon Role = "surgeon"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether s is one of the allowed role values.
func ValidRole(s string) bool {
	switch Role(s) {
	case RolePatient, RoleSurgeon, RoleAdmin:
		return true
	}
	return false
}

// Operation is the class of access being attempted on a row.
type Operation string

const (
	OpSelect Operation = "select"
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Table names the domain tables guarded by the policy set.
type Table string

const (
	TableProfiles       Table = "profiles"
	TablePatientDetails Table = "patient_details"
	TableSurgeonDetails Table = "surgeon_details"
	TableVitalSigns     Table = "vital_signs"
	TableSurgicalHist   Table = "surgical_history"
	TableSurgicalCases  Table = "surgical_cases"
	TableHistoricalData Table = "historical_surgical_data"
)

// Caller is the authenticated actor issuing a request, resolved to exactly
// one profile. Role is looked up once per request by a CallerResolver and
// trusted by every policy check afterwards.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

// RowAttrs carries the identity columns a policy may reference. Fields that
// do not exist on a given table are left as zero values; no policy for that
// table inspects them.
type RowAttrs struct {
	// ProfileID is profiles.id.
	ProfileID uuid.UUID
	// UserID is the owning profile id on the 1:1 detail tables.
	UserID uuid.UUID
	// PatientID is the owning patient on vital_signs, surgical_history
	// and surgical_cases rows.
	PatientID uuid.UUID
	// SurgeonID is the optional surgeon reference on surgical_cases rows.
	SurgeonID *uuid.UUID
}
