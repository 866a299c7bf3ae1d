package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

type Service struct {
	repo  Repository
	authz *authz.Engine
}

func NewService(repo Repository, engine *authz.Engine) *Service {
	return &Service{repo: repo, authz: engine}
}

func (s *Service) Get(ctx context.Context, caller authz.Caller, userID uuid.UUID) (*Details, error) {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TablePatientDetails, authz.OpSelect, caller, d.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return d, nil
}

// Save creates or replaces the caller-owned details row. Only the owning
// patient passes the write policy; clinician read access does not extend
// to writes.
func (s *Service) Save(ctx context.Context, caller authz.Caller, d *Details) (*Details, error) {
	op := authz.OpInsert
	if _, err := s.repo.GetByUserID(ctx, d.UserID); err == nil {
		op = authz.OpUpdate
	}
	if !s.authz.Can(authz.TablePatientDetails, op, caller, d.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if err := s.repo.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, caller authz.Caller, userID uuid.UUID) error {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return authz.ErrNotFound
	}
	if !s.authz.Can(authz.TablePatientDetails, authz.OpDelete, caller, d.Attrs()) {
		return authz.ErrNotFound
	}
	return s.repo.Delete(ctx, userID)
}

// List returns detail rows visible to the caller: the whole table for
// clinicians, at most the caller's own row otherwise.
func (s *Service) List(ctx context.Context, caller authz.Caller, limit, offset int) ([]*Details, int, error) {
	if s.authz.CanAnyRow(authz.TablePatientDetails, authz.OpSelect, caller) {
		return s.repo.List(ctx, limit, offset)
	}
	d, err := s.repo.GetByUserID(ctx, caller.ID)
	if err != nil {
		return nil, 0, nil
	}
	if !s.authz.Can(authz.TablePatientDetails, authz.OpSelect, caller, d.Attrs()) {
		return nil, 0, nil
	}
	return []*Details{d}, 1, nil
}
