package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
)

type Service struct {
	repo  Repository
	authz *authz.Engine
}

func NewService(repo Repository, engine *authz.Engine) *Service {
	return &Service{repo: repo, authz: engine}
}

// Record inserts a measurement. Patients may record their own vitals;
// surgeons and admins may record for any patient.
func (s *Service) Record(ctx context.Context, caller authz.Caller, v *VitalSign) (*VitalSign, error) {
	if v.PatientID == uuid.Nil {
		return nil, db.NewConstraintError("patient_id", "must not be empty")
	}
	if !s.authz.Can(authz.TableVitalSigns, authz.OpInsert, caller, v.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if v.MeasuredAt.IsZero() {
		v.MeasuredAt = time.Now().UTC()
	}
	recorder := caller.ID
	v.RecordedBy = &recorder
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*VitalSign, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableVitalSigns, authz.OpSelect, caller, v.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return v, nil
}

// Update is a clinician-only correction path; the patient-owner policy
// covers select and insert but not update.
func (s *Service) Update(ctx context.Context, caller authz.Caller, v *VitalSign) (*VitalSign, error) {
	current, err := s.repo.GetByID(ctx, v.ID)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableVitalSigns, authz.OpUpdate, caller, current.Attrs()) {
		return nil, authz.ErrNotFound
	}
	v.PatientID = current.PatientID
	if v.MeasuredAt.IsZero() {
		v.MeasuredAt = current.MeasuredAt
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableVitalSigns, authz.OpDelete, caller, current.Attrs()) {
		return authz.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// List returns every measurement for clinicians and only the caller's own
// rows for patients.
func (s *Service) List(ctx context.Context, caller authz.Caller, limit, offset int) ([]*VitalSign, int, error) {
	if s.authz.CanAnyRow(authz.TableVitalSigns, authz.OpSelect, caller) {
		return s.repo.List(ctx, limit, offset)
	}
	items, total, err := s.repo.ListByPatient(ctx, caller.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	visible := items[:0]
	for _, v := range items {
		if s.authz.Can(authz.TableVitalSigns, authz.OpSelect, caller, v.Attrs()) {
			visible = append(visible, v)
		}
	}
	return visible, total, nil
}

// ListByPatient returns one patient's measurements, policy-filtered.
func (s *Service) ListByPatient(ctx context.Context, caller authz.Caller, patientID uuid.UUID, limit, offset int) ([]*VitalSign, int, error) {
	probe := authz.RowAttrs{PatientID: patientID}
	if !s.authz.Can(authz.TableVitalSigns, authz.OpSelect, caller, probe) {
		return nil, 0, nil
	}
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
