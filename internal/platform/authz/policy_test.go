package authz

import (
	"testing"

	"github.com/google/uuid"
)

func TestEngine_DefaultDeny(t *testing.T) {
	e := NewEngine(nil)
	c := Caller{ID: uuid.New(), Role: RoleAdmin}

	if e.Can(TableProfiles, OpSelect, c, RowAttrs{ProfileID: c.ID}) {
		t.Error("expected deny when no policies are registered")
	}
}

func TestEngine_AnyPassingPolicyAdmits(t *testing.T) {
	denyAll := Policy{
		Name:  "deny",
		Table: TableVitalSigns,
		Check: func(Caller, RowAttrs) bool { return false },
	}
	allowOwner := Policy{
		Name:  "owner",
		Table: TableVitalSigns,
		Check: func(c Caller, row RowAttrs) bool { return c.ID == row.PatientID },
	}
	e := NewEngine([]Policy{denyAll, allowOwner})

	c := Caller{ID: uuid.New(), Role: RolePatient}
	d := e.Decide(TableVitalSigns, OpSelect, c, RowAttrs{PatientID: c.ID})
	if !d.Allowed {
		t.Fatal("expected a single passing policy to admit the access")
	}
	if d.Policy != "owner" {
		t.Errorf("expected admitting policy %q, got %q", "owner", d.Policy)
	}
}

func TestEngine_OpScoping(t *testing.T) {
	readOnly := Policy{
		Name:  "read_only",
		Table: TableSurgicalHist,
		Ops:   []Operation{OpSelect},
		Check: func(Caller, RowAttrs) bool { return true },
	}
	e := NewEngine([]Policy{readOnly})
	c := Caller{ID: uuid.New(), Role: RolePatient}

	if !e.Can(TableSurgicalHist, OpSelect, c, RowAttrs{}) {
		t.Error("expected select to be admitted")
	}
	for _, op := range []Operation{OpInsert, OpUpdate, OpDelete} {
		if e.Can(TableSurgicalHist, op, c, RowAttrs{}) {
			t.Errorf("expected %s to be denied by a select-only policy", op)
		}
	}
}

func TestEngine_EmptyOpsCoverEverything(t *testing.T) {
	full := Policy{
		Name:  "full",
		Table: TablePatientDetails,
		Check: func(c Caller, row RowAttrs) bool { return c.ID == row.UserID },
	}
	e := NewEngine([]Policy{full})
	c := Caller{ID: uuid.New(), Role: RolePatient}

	for _, op := range []Operation{OpSelect, OpInsert, OpUpdate, OpDelete} {
		if !e.Can(TablePatientDetails, op, c, RowAttrs{UserID: c.ID}) {
			t.Errorf("expected %s to be admitted by an unscoped policy", op)
		}
	}
}

func TestEngine_TablesAreIsolated(t *testing.T) {
	allowProfiles := Policy{
		Name:  "profiles_any",
		Table: TableProfiles,
		Check: func(Caller, RowAttrs) bool { return true },
	}
	e := NewEngine([]Policy{allowProfiles})
	c := Caller{ID: uuid.New(), Role: RolePatient}

	if e.Can(TableVitalSigns, OpSelect, c, RowAttrs{}) {
		t.Error("policy on profiles must not admit access to vital_signs")
	}
}

func TestEngine_CanAnyRow(t *testing.T) {
	rolewide := Policy{
		Name:     "admin_wide",
		Table:    TableHistoricalData,
		RoleOnly: true,
		Check:    func(c Caller, _ RowAttrs) bool { return c.Role == RoleAdmin },
	}
	rowBound := Policy{
		Name:  "owner",
		Table: TableHistoricalData,
		Check: func(c Caller, row RowAttrs) bool { return c.ID == row.UserID },
	}
	e := NewEngine([]Policy{rolewide, rowBound})

	admin := Caller{ID: uuid.New(), Role: RoleAdmin}
	patient := Caller{ID: uuid.New(), Role: RolePatient}

	if !e.CanAnyRow(TableHistoricalData, OpSelect, admin) {
		t.Error("expected role-only policy to grant table-wide access to admin")
	}
	if e.CanAnyRow(TableHistoricalData, OpSelect, patient) {
		t.Error("row-bound policies must not grant table-wide access")
	}
}

func TestValidRole(t *testing.T) {
	for _, valid := range []string{"patient", "surgeon", "admin"} {
		if !ValidRole(valid) {
			t.Errorf("expected %q to be a valid role", valid)
		}
	}
	for _, invalid := range []string{"", "doctor", "Patient", "superadmin"} {
		if ValidRole(invalid) {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}
