package surgeon

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

// Get returns a directory entry. The public-read policy admits every
// caller, so this only fails when the row is absent.
func (s *Service) Get(ctx context.Context, caller authz.Caller, userID uuid.UUID) (*Details, error) {
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableSurgeonDetails, authz.OpSelect, caller, d.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return d, nil
}

func (s *Service) Save(ctx context.Context, caller authz.Caller, d *Details) (*Details, error) {
	if d.Specialty == "" {
		return nil, db.NewConstraintError("specialty", "must not be empty")
	}
	op := authz.OpInsert
	if _, err := s.repo.GetByUserID(ctx, d.UserID); err == nil {
		op = authz.OpUpdate
	}
	if !s.authz.Can(authz.TableSurgeonDetails, op, caller, d.Attrs()) {
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
	if !s.authz.Can(authz.TableSurgeonDetails, authz.OpDelete, caller, d.Attrs()) {
		return authz.ErrNotFound
	}
	return s.repo.Delete(ctx, userID)
}

// List returns the public surgeon directory.
func (s *Service) List(ctx context.Context, caller authz.Caller, limit, offset int) ([]*Details, int, error) {
	if !s.authz.CanAnyRow(authz.TableSurgeonDetails, authz.OpSelect, caller) {
		return nil, 0, nil
	}
	return s.repo.List(ctx, limit, offset)
}
