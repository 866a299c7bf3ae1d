package surgery

import (
	"context"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
)

type Service struct {
	cases   CaseRepository
	history HistoryRepository
	authz   *authz.Engine
}

func NewService(cases CaseRepository, history HistoryRepository, engine *authz.Engine) *Service {
	return &Service{cases: cases, history: history, authz: engine}
}

func validateCase(sc *Case) error {
	if sc.PatientID == uuid.Nil {
		return db.NewConstraintError("patient_id", "must not be empty")
	}
	if sc.ProcedureName == "" {
		return db.NewConstraintError("procedure_name", "must not be empty")
	}
	if sc.Status == "" {
		sc.Status = StatusProposed
	}
	if !validStatuses[sc.Status] {
		return db.NewConstraintError("status", "invalid status: %s", sc.Status)
	}
	if sc.Priority != nil && !validPriorities[*sc.Priority] {
		return db.NewConstraintError("priority", "invalid priority: %s", *sc.Priority)
	}
	return nil
}

// -- Surgical cases --

// CreateCase inserts a case. Insert falls under the surgeon-or-admin rule:
// the patient of the case cannot open one themselves.
func (s *Service) CreateCase(ctx context.Context, caller authz.Caller, sc *Case) (*Case, error) {
	if err := validateCase(sc); err != nil {
		return nil, err
	}
	if !s.authz.Can(authz.TableSurgicalCases, authz.OpInsert, caller, sc.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if err := s.cases.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) GetCase(ctx context.Context, caller authz.Caller, id uuid.UUID) (*Case, error) {
	sc, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgicalCases, authz.OpSelect, caller, sc.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return sc, nil
}

// UpdateCase requires the caller to be the assigned surgeon or an admin.
// The patient of the case may read it but never change it. The update
// permission is checked against the stored row, not the submitted one, so
// a caller cannot grant themselves access by rewriting surgeon_id.
func (s *Service) UpdateCase(ctx context.Context, caller authz.Caller, sc *Case) (*Case, error) {
	current, err := s.cases.GetByID(ctx, sc.ID)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgicalCases, authz.OpUpdate, caller, current.Attrs()) {
		return nil, authz.ErrNotFound
	}
	sc.PatientID = current.PatientID
	if err := validateCase(sc); err != nil {
		return nil, err
	}
	if err := s.cases.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) DeleteCase(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	current, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgicalCases, authz.OpDelete, caller, current.Attrs()) {
		return authz.ErrNotFound
	}
	return s.cases.Delete(ctx, id)
}

// ListCases returns every case for admins and the caller's own cases (as
// patient or assigned surgeon) for everyone else.
func (s *Service) ListCases(ctx context.Context, caller authz.Caller, limit, offset int) ([]*Case, int, error) {
	if s.authz.CanAnyRow(authz.TableSurgicalCases, authz.OpSelect, caller) {
		return s.cases.List(ctx, limit, offset)
	}
	items, total, err := s.cases.ListForParticipant(ctx, caller.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	visible := items[:0]
	for _, sc := range items {
		if s.authz.Can(authz.TableSurgicalCases, authz.OpSelect, caller, sc.Attrs()) {
			visible = append(visible, sc)
		}
	}
	return visible, total, nil
}

// -- Surgical history --

func (s *Service) AddHistory(ctx context.Context, caller authz.Caller, h *History) (*History, error) {
	if h.PatientID == uuid.Nil {
		return nil, db.NewConstraintError("patient_id", "must not be empty")
	}
	if h.ProcedureName == "" {
		return nil, db.NewConstraintError("procedure_name", "must not be empty")
	}
	if !s.authz.Can(authz.TableSurgicalHist, authz.OpInsert, caller, h.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if err := s.history.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) GetHistory(ctx context.Context, caller authz.Caller, id uuid.UUID) (*History, error) {
	h, err := s.history.GetByID(ctx, id)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgicalHist, authz.OpSelect, caller, h.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return h, nil
}

func (s *Service) UpdateHistory(ctx context.Context, caller authz.Caller, h *History) (*History, error) {
	current, err := s.history.GetByID(ctx, h.ID)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgicalHist, authz.OpUpdate, caller, current.Attrs()) {
		return nil, authz.ErrNotFound
	}
	h.PatientID = current.PatientID
	if h.ProcedureName == "" {
		return nil, db.NewConstraintError("procedure_name", "must not be empty")
	}
	if err := s.history.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) DeleteHistory(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	current, err := s.history.GetByID(ctx, id)
	if err != nil {
		return authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgicalHist, authz.OpDelete, caller, current.Attrs()) {
		return authz.ErrNotFound
	}
	return s.history.Delete(ctx, id)
}

func (s *Service) ListHistory(ctx context.Context, caller authz.Caller, limit, offset int) ([]*History, int, error) {
	if s.authz.CanAnyRow(authz.TableSurgicalHist, authz.OpSelect, caller) {
		return s.history.List(ctx, limit, offset)
	}
	items, total, err := s.history.ListByPatient(ctx, caller.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	visible := items[:0]
	for _, h := range items {
		if s.authz.Can(authz.TableSurgicalHist, authz.OpSelect, caller, h.Attrs()) {
			visible = append(visible, h)
		}
	}
	return visible, total, nil
}
