package authz

func isClinician(r Role) bool { return r == RoleSurgeon || r == RoleAdmin }

// DefaultPolicies returns the full policy catalogue for the surgicare
// schema. The surgeon-or-admin rule on surgical_cases is split into two
// policies so the admin half stays role-only; under OR combination the
// split is equivalent to the single disjunction.
func DefaultPolicies() []Policy {
	return []Policy{
		// profiles: a caller always has access to their own row. Role
		// resolution depends on this rule, so it must never be
		// narrowed.
		{
			Name:  "profiles_self",
			Table: TableProfiles,
			Ops:   []Operation{OpSelect, OpInsert, OpUpdate},
			Check: func(c Caller, row RowAttrs) bool { return c.ID == row.ProfileID },
		},
		{
			Name:     "profiles_surgeon_read",
			Table:    TableProfiles,
			Ops:      []Operation{OpSelect},
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return c.Role == RoleSurgeon },
		},
		{
			Name:     "profiles_admin_all",
			Table:    TableProfiles,
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return c.Role == RoleAdmin },
		},

		// patient_details: owned exclusively by the patient; clinicians
		// may read.
		{
			Name:  "patient_details_owner",
			Table: TablePatientDetails,
			Check: func(c Caller, row RowAttrs) bool { return c.ID == row.UserID },
		},
		{
			Name:     "patient_details_clinician_read",
			Table:    TablePatientDetails,
			Ops:      []Operation{OpSelect},
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return isClinician(c.Role) },
		},

		// surgeon_details: public directory, writable only by the owner.
		{
			Name:  "surgeon_details_owner",
			Table: TableSurgeonDetails,
			Check: func(c Caller, row RowAttrs) bool { return c.ID == row.UserID },
		},
		{
			Name:     "surgeon_details_public_read",
			Table:    TableSurgeonDetails,
			Ops:      []Operation{OpSelect},
			RoleOnly: true,
			Check:    func(_ Caller, _ RowAttrs) bool { return true },
		},

		// vital_signs: patients read and record their own measurements;
		// clinicians have full access.
		{
			Name:  "vital_signs_owner",
			Table: TableVitalSigns,
			Ops:   []Operation{OpSelect, OpInsert},
			Check: func(c Caller, row RowAttrs) bool { return c.ID == row.PatientID },
		},
		{
			Name:     "vital_signs_clinician",
			Table:    TableVitalSigns,
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return isClinician(c.Role) },
		},

		// surgical_history: patients read their own; clinicians manage.
		{
			Name:  "surgical_history_owner_read",
			Table: TableSurgicalHist,
			Ops:   []Operation{OpSelect},
			Check: func(c Caller, row RowAttrs) bool { return c.ID == row.PatientID },
		},
		{
			Name:     "surgical_history_clinician",
			Table:    TableSurgicalHist,
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return isClinician(c.Role) },
		},

		// surgical_cases: the patient may read their case; only the
		// assigned surgeon or an admin may change it.
		{
			Name:  "surgical_cases_patient_read",
			Table: TableSurgicalCases,
			Ops:   []Operation{OpSelect},
			Check: func(c Caller, row RowAttrs) bool { return c.ID == row.PatientID },
		},
		{
			Name:  "surgical_cases_surgeon",
			Table: TableSurgicalCases,
			Check: func(c Caller, row RowAttrs) bool {
				return row.SurgeonID != nil && c.ID == *row.SurgeonID
			},
		},
		{
			Name:     "surgical_cases_admin",
			Table:    TableSurgicalCases,
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return c.Role == RoleAdmin },
		},

		// historical_surgical_data: analytics samples; clinicians read,
		// admins manage.
		{
			Name:     "historical_admin_all",
			Table:    TableHistoricalData,
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return c.Role == RoleAdmin },
		},
		{
			Name:     "historical_clinician_read",
			Table:    TableHistoricalData,
			Ops:      []Operation{OpSelect},
			RoleOnly: true,
			Check:    func(c Caller, _ RowAttrs) bool { return isClinician(c.Role) },
		},
	}
}
