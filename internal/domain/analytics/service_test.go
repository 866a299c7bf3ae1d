package analytics

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

type mockRepo struct {
	samples map[uuid.UUID]*VolumeSample
}

func newMockRepo() *mockRepo {
	return &mockRepo{samples: make(map[uuid.UUID]*VolumeSample)}
}

func (m *mockRepo) Create(_ context.Context, v *VolumeSample) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	m.samples[v.ID] = v
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*VolumeSample, error) {
	v, ok := m.samples[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return v, nil
}

func (m *mockRepo) Update(_ context.Context, v *VolumeSample) error {
	m.samples[v.ID] = v
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.samples, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*VolumeSample, int, error) {
	var result []*VolumeSample
	for _, v := range m.samples {
		result = append(result, v)
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, authz.NewEngine(authz.DefaultPolicies())), repo
}

func strPtr(s string) *string { return &s }

func sample() *VolumeSample {
	return &VolumeSample{Hospital: "General", Specialty: "cardiac", Season: strPtr("winter"), CaseCount: 12}
}

func TestCreate_AdminOnly(t *testing.T) {
	svc, repo := newTestService()

	admin := authz.Caller{ID: uuid.New(), Role: authz.RoleAdmin}
	v, err := svc.Create(context.Background(), admin, sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.samples[v.ID]; !ok {
		t.Error("expected sample to be stored")
	}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	if _, err := svc.Create(context.Background(), surgeon, sample()); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected surgeon create to be denied, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	admin := authz.Caller{ID: uuid.New(), Role: authz.RoleAdmin}

	bad := sample()
	bad.Season = strPtr("monsoon")
	if _, err := svc.Create(context.Background(), admin, bad); err == nil {
		t.Error("expected invalid season to be rejected")
	}

	negative := sample()
	negative.CaseCount = -1
	_, err := svc.Create(context.Background(), admin, negative)
	if _, ok := db.IsConstraintError(err); !ok {
		t.Errorf("expected constraint error for negative count, got %v", err)
	}
}

func TestGet_ClinicianRead(t *testing.T) {
	svc, repo := newTestService()
	v := sample()
	v.ID = uuid.New()
	repo.samples[v.ID] = v

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	if _, err := svc.Get(context.Background(), surgeon, v.ID); err != nil {
		t.Errorf("expected surgeon read to succeed, got %v", err)
	}

	patient := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}
	if _, err := svc.Get(context.Background(), patient, v.ID); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected patient read to be denied, got %v", err)
	}
}

func TestUpdateDelete_AdminOnly(t *testing.T) {
	svc, repo := newTestService()
	v := sample()
	v.ID = uuid.New()
	repo.samples[v.ID] = v

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	if _, err := svc.Update(context.Background(), surgeon, v); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected surgeon update to be denied, got %v", err)
	}
	if err := svc.Delete(context.Background(), surgeon, v.ID); !errors.Is(err, authz.ErrNotFound) {
		t.Errorf("expected surgeon delete to be denied, got %v", err)
	}

	admin := authz.Caller{ID: uuid.New(), Role: authz.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, v.ID); err != nil {
		t.Errorf("expected admin delete to succeed, got %v", err)
	}
}

func TestList_PatientsSeeNothing(t *testing.T) {
	svc, repo := newTestService()
	v := sample()
	v.ID = uuid.New()
	repo.samples[v.ID] = v

	patient := authz.Caller{ID: uuid.New(), Role: authz.RolePatient}
	items, total, err := svc.List(context.Background(), patient, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Error("expected patients to see no historical data")
	}

	surgeon := authz.Caller{ID: uuid.New(), Role: authz.RoleSurgeon}
	items, total, err = svc.List(context.Background(), surgeon, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected surgeon to list the sample, got %d", len(items))
	}
}
