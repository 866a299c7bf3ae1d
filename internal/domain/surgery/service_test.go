package surgery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
)

// -- Mock repositories --

type mockCaseRepo struct {
	cases map[uuid.UUID]*Case
}

func newMockCaseRepo() *mockCaseRepo {
	return &mockCaseRepo{cases: make(map[uuid.UUID]*Case)}
}

func (m *mockCaseRepo) Create(_ context.Context, sc *Case) error {
	sc.ID = uuid.New()
	sc.CreatedAt = time.Now()
	sc.UpdatedAt = time.Now()
	m.cases[sc.ID] = sc
	return nil
}

func (m *mockCaseRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	sc, ok := m.cases[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return sc, nil
}

func (m *mockCaseRepo) Update(_ context.Context, sc *Case) error {
	m.cases[sc.ID] = sc
	return nil
}

func (m *mockCaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.cases, id)
	return nil
}

func (m *mockCaseRepo) List(_ context.Context, limit, offset int) ([]*Case, int, error) {
	var result []*Case
	for _, sc := range m.cases {
		result = append(result, sc)
	}
	return result, len(result), nil
}

func (m *mockCaseRepo) ListForParticipant(_ context.Context, id uuid.UUID, limit, offset int) ([]*Case, int, error) {
	var result []*Case
	for _, sc := range m.cases {
		if sc.PatientID == id || (sc.SurgeonID != nil && *sc.SurgeonID == id) {
			result = append(result, sc)
		}
	}
	return result, len(result), nil
}

type mockHistoryRepo struct {
	entries map[uuid.UUID]*History
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{entries: make(map[uuid.UUID]*History)}
}

func (m *mockHistoryRepo) Create(_ context.Context, h *History) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	m.entries[h.ID] = h
	return nil
}

func (m *mockHistoryRepo) GetByID(_ context.Context, id uuid.UUID) (*History, error) {
	h, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return h, nil
}

func (m *mockHistoryRepo) Update(_ context.Context, h *History) error {
	m.entries[h.ID] = h
	return nil
}

func (m *mockHistoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.entries, id)
	return nil
}

func (m *mockHistoryRepo) List(_ context.Context, limit, offset int) ([]*History, int, error) {
	var result []*History
	for _, h := range m.entries {
		result = append(result, h)
	}
	return result, len(result), nil
}

func (m *mockHistoryRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*History, int, error) {
	var result []*History
	for _, h := range m.entries {
		if h.PatientID == patientID {
			result = append(result, h)
		}
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockCaseRepo, *mockHistoryRepo) {
	cases := newMockCaseRepo()
	history := newMockHistoryRepo()
	return NewService(cases, history, authz.NewEngine(authz.DefaultPolicies())), cases, history
}

func strPtr(s string) *string { return &s }

// -- Cases --

func TestCreateCase_SurgeonAssignsSelf(t *testing.T) {
	svc, _, _ := newTestService()
	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}

	sc, err := svc.CreateCase(context.Background(), surgeon, &Case{
		PatientID:     uuid.New(),
		SurgeonID:     &surgeon.ID,
		ProcedureName: "appendectomy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Status != StatusProposed {
		t.Errorf("expected default status %q, got %q", StatusProposed, sc.Status)
	}
}

func TestCreateCase_PatientDenied(t *testing.T) {
	svc, _, _ := newTestService()
	patient := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}

	_, err := svc.CreateCase(context.Background(), patient, &Case{
		PatientID:     patient.ID,
		ProcedureName: "appendectomy",
	})
	if !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected patient create to be denied, got %v", err)
	}
}

func TestCreateCase_InvalidStatusAndPriority(t *testing.T) {
	svc, _, _ := newTestService()
	admin := authz.Caller{ID: uuid.New(), Role: authz.RoleAdmin}

	_, err := svc.CreateCase(context.Background(), admin, &Case{
		PatientID:     uuid.New(),
		ProcedureName: "appendectomy",
		Status:        "done",
	})
	if _, ok := db.IsConstraintError(err); !ok {
		t.Fatalf("expected constraint error for bad status, got %v", err)
	}

	_, err = svc.CreateCase(context.Background(), admin, &Case{
		PatientID:     uuid.New(),
		ProcedureName: "appendectomy",
		Priority:      strPtr("critical"),
	})
	if _, ok := db.IsConstraintError(err); !ok {
		t.Fatalf("expected constraint error for bad priority, got %v", err)
	}
}

func TestGetCase_ParticipantsOnly(t *testing.T) {
	svc, cases, _ := newTestService()
	surgeonID := uuid.New()
	sc := &Case{ID: uuid.New(), PatientID: uuid.New(), SurgeonID: &surgeonID, ProcedureName: "bypass", Status: StatusScheduled}
	cases.cases[sc.ID] = sc

	for _, c := range []authz.Caller{
		{ID: sc.PatientID, Role: authz.RolePatient},
		{ID: surgeonID, Role: authz.RoleSurgeon},
		{ID: uuid.New(), Role: authz.RoleAdmin},
	} {
		if _, err := svc.GetCase(context.Background(), c, sc.ID); err != nil {
			t.Errorf("expected %s read to succeed, got %v", c.Role, err)
		}
	}

	stranger := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}
	if _, err := svc.GetCase(context.Background(), stranger, sc.ID); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected unrelated patient to be denied, got %v", err)
	}
}

func TestUpdateCase_PatientCannotUpdateOwnCase(t *testing.T) {
	svc, cases, _ := newTestService()
	surgeonID := uuid.New()
	sc := &Case{ID: uuid.New(), PatientID: uuid.New(), SurgeonID: &surgeonID, ProcedureName: "bypass", Status: StatusScheduled}
	cases.cases[sc.ID] = sc

	patient := authz.Caller{ID: sc.PatientID, Role: authz.RolePatient}
	_, err := svc.UpdateCase(context.Background(), patient, &Case{ID: sc.ID, ProcedureName: "bypass", Status: StatusCancelled})
	if !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected patient update of their own case to be denied, got %v", err)
	}
}

func TestUpdateCase_ChecksStoredRow(t *testing.T) {
	svc, cases, _ := newTestService()
	sc := &Case{ID: uuid.New(), PatientID: uuid.New(), ProcedureName: "bypass", Status: StatusProposed}
	cases.cases[sc.ID] = sc

	// A surgeon submitting themselves as surgeon_id on a case they are
	// not assigned to must still be denied.
	intruder := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	_, err := svc.UpdateCase(context.Background(), intruder, &Case{
		ID:            sc.ID,
		SurgeonID:     &intruder.ID,
		ProcedureName: "bypass",
		Status:        StatusScheduled,
	})
	if !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected unassigned surgeon to be denied, got %v", err)
	}
}

func TestUpdateCase_AssignedSurgeon(t *testing.T) {
	svc, cases, _ := newTestService()
	surgeonID := uuid.New()
	sc := &Case{ID: uuid.New(), PatientID: uuid.New(), SurgeonID: &surgeonID, ProcedureName: "bypass", Status: StatusScheduled}
	cases.cases[sc.ID] = sc

	surgeon := authz.Caller{ID: surgeonID, Role: authz.RoleSurgeon}
	updated, err := svc.UpdateCase(context.Background(), surgeon, &Case{
		ID:            sc.ID,
		SurgeonID:     &surgeonID,
		ProcedureName: "bypass",
		Status:        StatusInProgress,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Errorf("expected status in_progress, got %s", updated.Status)
	}
	if updated.PatientID != sc.PatientID {
		t.Error("update must not reassign the case to another patient")
	}
}

func TestListCases_ScopedByRole(t *testing.T) {
	svc, cases, _ := newTestService()
	patientID := uuid.New()
	surgeonID := uuid.New()

	c1 := &Case{ID: uuid.New(), PatientID: patientID, ProcedureName: "a", Status: StatusProposed}
	c2 := &Case{ID: uuid.New(), PatientID: uuid.New(), SurgeonID: &surgeonID, ProcedureName: "b", Status: StatusScheduled}
	c3 := &Case{ID: uuid.New(), PatientID: uuid.New(), ProcedureName: "c", Status: StatusProposed}
	for _, sc := range []*Case{c1, c2, c3} {
		cases.cases[sc.ID] = sc
	}

	admin := authz.Caller{ID: uuid.New(), Role: authz.RoleAdmin}
	all, _, err := svc.ListCases(context.Background(), admin, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected admin to list all 3 cases, got %d", len(all))
	}

	own, _, err := svc.ListCases(context.Background(), authz.Caller{ID: patientID, Role: authz.RolePatient}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 1 || own[0].ID != c1.ID {
		t.Errorf("expected patient to see only their case, got %d", len(own))
	}

	assigned, _, err := svc.ListCases(context.Background(), authz.Caller{ID: surgeonID, Role: authz.RoleSurgeon}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != c2.ID {
		t.Errorf("expected surgeon to see only their assigned case, got %d", len(assigned))
	}
}

// -- History --

func TestAddHistory_ClinicianOnly(t *testing.T) {
	svc, _, history := newTestService()

	patient := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}
	_, err := svc.AddHistory(context.Background(), patient, &History{PatientID: patient.ID, ProcedureName: "tonsillectomy"})
	if !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected patient insert to be denied, got %v", err)
	}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	h, err := svc.AddHistory(context.Background(), surgeon, &History{PatientID: uuid.New(), ProcedureName: "tonsillectomy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := history.entries[h.ID]; !ok {
		t.Error("expected history entry to be stored")
	}
}

func TestGetHistory_OwnerRead(t *testing.T) {
	svc, _, history := newTestService()
	h := &History{ID: uuid.New(), PatientID: uuid.New(), ProcedureName: "tonsillectomy"}
	history.entries[h.ID] = h

	owner := authz.Caller{ID: h.PatientID, Role: authz.RolePatient}
	if _, err := svc.GetHistory(context.Background(), owner, h.ID); err != nil {
		t.Errorf("expected owner read to succeed, got %v", err)
	}

	stranger := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}
	if _, err := svc.GetHistory(context.Background(), stranger, h.ID); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected unrelated patient to be denied, got %v", err)
	}
}

func TestListHistory_ScopedByRole(t *testing.T) {
	svc, _, history := newTestService()
	patientID := uuid.New()
	for _, pid := range []uuid.UUID{patientID, uuid.New()} {
		id := uuid.New()
		history.entries[id] = &History{ID: id, PatientID: pid, ProcedureName: "x"}
	}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	all, _, err := svc.ListHistory(context.Background(), surgeon, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected surgeon to list all entries, got %d", len(all))
	}

	own, _, err := svc.ListHistory(context.Background(), authz.Caller{ID: patientID, Role: authz.RolePatient}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 1 || own[0].PatientID != patientID {
		t.Errorf("expected patient to see only their entry, got %d", len(own))
	}
}
