package analytics

import (
	"context"

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

func validateSample(v *VolumeSample) error {
	if v.Hospital == "" {
		return db.NewConstraintError("hospital", "must not be empty")
	}
	if v.Specialty == "" {
		return db.NewConstraintError("specialty", "must not be empty")
	}
	if v.Season != nil && !validSeasons[*v.Season] {
		return db.NewConstraintError("season", "invalid season: %s", *v.Season)
	}
	if v.CaseCount < 0 {
		return db.NewConstraintError("case_count", "must not be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, caller authz.Caller, v *VolumeSample) (*VolumeSample, error) {
	if err := validateSample(v); err != nil {
		return nil, err
	}
	if !s.authz.Can(authz.TableHistoricalData, authz.OpInsert, caller, v.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*VolumeSample, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableHistoricalData, authz.OpSelect, caller, v.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, caller authz.Caller, v *VolumeSample) (*VolumeSample, error) {
	if _, err := s.repo.GetByID(ctx, v.ID); err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableHistoricalData, authz.OpUpdate, caller, v.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if err := validateSample(v); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableHistoricalData, authz.OpDelete, caller, authz.RowAttrs{}) {
		return authz.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// List returns the sample set to surgeons and admins; patients see none.
func (s *Service) List(ctx context.Context, caller authz.Caller, limit, offset int) ([]*VolumeSample, int, error) {
	if !s.authz.CanAnyRow(authz.TableHistoricalData, authz.OpSelect, caller) {
		return nil, 0, nil
	}
	return s.repo.List(ctx, limit, offset)
}
