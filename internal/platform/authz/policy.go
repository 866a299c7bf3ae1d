package authz

// Policy is a single named row-level access rule. Check must be a pure
// function of the caller and the row; the caller's role has already been
// resolved when Check runs.
type Policy struct {
	Name  string
	Table Table
	// Ops the policy applies to. Empty means every operation.
	Ops []Operation
	// RoleOnly marks policies whose Check never inspects the row. The
	// engine uses them to answer table-wide questions (may this caller
	// see arbitrary rows of the table at all).
	RoleOnly bool
	Check    func(c Caller, row RowAttrs) bool
}

func (p Policy) appliesTo(op Operation) bool {
	if len(p.Ops) == 0 {
		return true
	}
	for _, o := range p.Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Decision is the result of a policy evaluation.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Policy  string `json:"policy,omitempty"`
}

// Engine evaluates the policy set. Policies for the same table and
// operation are permissive: the first one that passes admits the access,
// and zero matches deny it.
type Engine struct {
	byTable map[Table][]Policy
}

// NewEngine creates an engine over the given policies.
func NewEngine(policies []Policy) *Engine {
	byTable := make(map[Table][]Policy)
	for _, p := range policies {
		byTable[p.Table] = append(byTable[p.Table], p)
	}
	return &Engine{byTable: byTable}
}

// Can reports whether the caller may perform op on the given row.
func (e *Engine) Can(table Table, op Operation, c Caller, row RowAttrs) bool {
	return e.Decide(table, op, c, row).Allowed
}

// Decide evaluates the policy set and names the admitting policy.
func (e *Engine) Decide(table Table, op Operation, c Caller, row RowAttrs) Decision {
	for _, p := range e.byTable[table] {
		if !p.appliesTo(op) {
			continue
		}
		if p.Check(c, row) {
			return Decision{Allowed: true, Policy: p.Name}
		}
	}
	return Decision{Allowed: false}
}

// CanAnyRow reports whether the caller passes a role-only policy for op on
// the table, i.e. may access rows regardless of their contents. List paths
// use this to decide between a table-wide fetch and an owner-scoped one.
func (e *Engine) CanAnyRow(table Table, op Operation, c Caller) bool {
	for _, p := range e.byTable[table] {
		if !p.RoleOnly || !p.appliesTo(op) {
			continue
		}
		if p.Check(c, RowAttrs{}) {
			return true
		}
	}
	return false
}
