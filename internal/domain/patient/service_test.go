package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surgicare/surgicare/internal/platform/authz"
)

type mockRepo struct {
	details map[uuid.UUID]*Details
}

func newMockRepo() *mockRepo {
	return &mockRepo{details: make(map[uuid.UUID]*Details)}
}

func (m *mockRepo) Upsert(_ context.Context, d *Details) error {
	if existing, ok := m.details[d.UserID]; ok {
		d.CreatedAt = existing.CreatedAt
	} else {
		d.CreatedAt = time.Now()
	}
	d.UpdatedAt = time.Now()
	m.details[d.UserID] = d
	return nil
}

func (m *mockRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Details, error) {
	d, ok := m.details[userID]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

func (m *mockRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(m.details, userID)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Details, int, error) {
	var result []*Details
	for _, d := range m.details {
		result = append(result, d)
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, authz.NewEngine(authz.DefaultPolicies())), repo
}

func TestSave_OwnerOnly(t *testing.T) {
	svc, repo := newTestService()
	owner := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}

	d, err := svc.Save(context.Background(), owner, &Details{UserID: owner.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.details[d.UserID]; !ok {
		t.Error("expected details row to be stored")
	}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	if _, err := svc.Save(context.Background(), surgeon, &Details{UserID: owner.ID}); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected surgeon write to be denied, got %v", err)
	}
}

func TestGet_OwnerAndClinicians(t *testing.T) {
	svc, repo := newTestService()
	ownerID := uuid.New()
	repo.details[ownerID] = &Details{UserID: ownerID}

	owner := authz.Caller{ID: ownerID, Role: authz.RolePatient}
	if _, err := svc.Get(context.Background(), owner, ownerID); err != nil {
		t.Errorf("expected owner read to succeed, got %v", err)
	}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	if _, err := svc.Get(context.Background(), surgeon, ownerID); err != nil {
		t.Errorf("expected surgeon read to succeed, got %v", err)
	}

	stranger := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}
	if _, err := svc.Get(context.Background(), stranger, ownerID); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected unrelated patient read to be denied, got %v", err)
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, repo := newTestService()
	ownerID := uuid.New()
	repo.details[ownerID] = &Details{UserID: ownerID}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	if err := svc.Delete(context.Background(), surgeon, ownerID); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected surgeon delete to be denied, got %v", err)
	}

	owner := authz.Caller{ID: ownerID, Role: authz.RolePatient}
	if err := svc.Delete(context.Background(), owner, ownerID); err != nil {
		t.Errorf("expected owner delete to succeed, got %v", err)
	}
	if _, ok := repo.details[ownerID]; ok {
		t.Error("expected details row to be removed")
	}
}

func TestList_ScopedByRole(t *testing.T) {
	svc, repo := newTestService()
	a, b := uuid.New(), uuid.New()
	repo.details[a] = &Details{UserID: a}
	repo.details[b] = &Details{UserID: b}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	all, total, err := svc.List(context.Background(), surgeon, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("expected surgeon to list both rows, got %d", total)
	}

	own, total, err := svc.List(context.Background(), authz.Caller{ID: a, Role: authz.RolePatient}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(own) != 1 || own[0].UserID != a {
		t.Errorf("expected patient to see only their own row, got %d rows", len(own))
	}

	none, total, err := svc.List(context.Background(), authz.Caller{ID: uuid.New(), Role: authz.RolePatient}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(none) != 0 {
		t.Errorf("expected patient without a row to see nothing, got %d rows", len(none))
	}
}
