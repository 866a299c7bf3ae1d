package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
)

// Defaults applied when signup metadata omits the field.
const (
	DefaultFullName = "Unknown User"
	DefaultRole     = string(authz.RolePatient)
)

// ProvisioningError marks a failed profile provisioning. The identity
// creation it belongs to must fail with it: an identity without a profile
// is treated as absent by the application.
type ProvisioningError struct {
	Err error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("profile provisioning failed: %v", e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

type Service struct {
	repo  Repository
	authz *authz.Engine
}

func NewService(repo Repository, engine *authz.Engine) *Service {
	return &Service{repo: repo, authz: engine}
}

// Provision creates the profile for a newly registered identity. Full name
// and role come from the signup metadata when present; otherwise the
// placeholder name and the patient role are used. A role value outside the
// allowed set fails provisioning, and the caller must fail the identity
// creation with it.
func (s *Service) Provision(ctx context.Context, ev IdentityCreated) (*Profile, error) {
	if ev.ID == uuid.Nil {
		return nil, &ProvisioningError{Err: db.NewConstraintError("id", "must not be empty")}
	}
	if ev.Email == "" {
		return nil, &ProvisioningError{Err: db.NewConstraintError("email", "must not be empty")}
	}

	p := &Profile{
		ID:       ev.ID,
		Email:    ev.Email,
		FullName: DefaultFullName,
		Role:     DefaultRole,
	}
	if name, ok := ev.Metadata["full_name"]; ok {
		p.FullName = name
	}
	if role, ok := ev.Metadata["role"]; ok {
		p.Role = role
	}
	if !authz.ValidRole(p.Role) {
		return nil, &ProvisioningError{Err: db.NewConstraintError("role", "invalid role: %s", p.Role)}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, &ProvisioningError{Err: err}
	}
	return p, nil
}

// RoleOf resolves the role stored on a profile. It implements
// authz.RoleResolver and is the single trusted accessor every policy
// evaluation goes through.
func (s *Service) RoleOf(ctx context.Context, id uuid.UUID) (authz.Role, error) {
	role, err := s.repo.RoleOf(ctx, id)
	if err != nil {
		return "", fmt.Errorf("role lookup for %s: %w", id, err)
	}
	return authz.Role(role), nil
}

func (s *Service) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableProfiles, authz.OpSelect, caller, p.Attrs()) {
		return nil, authz.ErrNotFound
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, caller authz.Caller, p *Profile) (*Profile, error) {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableProfiles, authz.OpUpdate, caller, current.Attrs()) {
		return nil, authz.ErrNotFound
	}
	if p.Role != "" && !authz.ValidRole(p.Role) {
		return nil, db.NewConstraintError("role", "invalid role: %s", p.Role)
	}

	if p.Email == "" {
		p.Email = current.Email
	}
	if p.FullName == "" {
		p.FullName = current.FullName
	}
	if p.Role == "" {
		p.Role = current.Role
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return authz.ErrNotFound
	}
	if !s.authz.Can(authz.TableProfiles, authz.OpDelete, caller, current.Attrs()) {
		return authz.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// List returns the profiles visible to the caller. Surgeons and admins see
// the directory; everyone else sees at most their own row.
func (s *Service) List(ctx context.Context, caller authz.Caller, limit, offset int) ([]*Profile, int, error) {
	if s.authz.CanAnyRow(authz.TableProfiles, authz.OpSelect, caller) {
		return s.repo.List(ctx, limit, offset)
	}
	p, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, 0, nil
	}
	if !s.authz.Can(authz.TableProfiles, authz.OpSelect, caller, p.Attrs()) {
		return nil, 0, nil
	}
	return []*Profile{p}, 1, nil
}
