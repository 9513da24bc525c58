package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockDepartmentRepo struct {
	items map[uuid.UUID]*Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{items: map[uuid.UUID]*Department{}}
}

func (m *mockDepartmentRepo) Create(_ context.Context, d *Department) error {
	d.ID = uuid.New()
	m.items[d.ID] = d
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Department, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, ErrDepartmentNotFound
	}
	return d, nil
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, name string) (*Department, error) {
	for _, d := range m.items {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, ErrDepartmentNotFound
}

func (m *mockDepartmentRepo) List(context.Context) ([]*Department, error) {
	out := make([]*Department, 0, len(m.items))
	for _, d := range m.items {
		out = append(out, d)
	}
	return out, nil
}

type mockServiceRepo struct {
	items map[uuid.UUID]*Service
}

func newMockServiceRepo() *mockServiceRepo {
	return &mockServiceRepo{items: map[uuid.UUID]*Service{}}
}

func (m *mockServiceRepo) Create(_ context.Context, s *Service) error {
	s.ID = uuid.New()
	m.items[s.ID] = s
	return nil
}

func (m *mockServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*Service, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return s, nil
}

func (m *mockServiceRepo) ListByDepartment(_ context.Context, departmentID uuid.UUID) ([]*Service, error) {
	var out []*Service
	for _, s := range m.items {
		if s.DepartmentID == departmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockServiceRepo) List(context.Context) ([]*Service, error) {
	out := make([]*Service, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, nil
}

func seedCatalog(t *testing.T, deps *mockDepartmentRepo, svcs *mockServiceRepo) (*Department, *Service, *Department) {
	t.Helper()
	medicine := &Department{Name: "Medicine", Description: "Medicine department"}
	surgery := &Department{Name: "Surgery", Description: "Surgery department"}
	deps.Create(context.Background(), medicine)
	deps.Create(context.Background(), surgery)
	fluShot := &Service{Name: "flu shot", DepartmentID: medicine.ID}
	svcs.Create(context.Background(), fluShot)
	return medicine, fluShot, surgery
}

func TestResolveDoctorRefs(t *testing.T) {
	deps := newMockDepartmentRepo()
	svcs := newMockServiceRepo()
	medicine, fluShot, _ := seedCatalog(t, deps, svcs)
	svc := NewService(deps, svcs, false)

	dep, resolved, err := svc.ResolveDoctorRefs(context.Background(), medicine.ID.String(), fluShot.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if dep.Name != "Medicine" || resolved.Name != "flu shot" {
		t.Errorf("unexpected resolution: %+v %+v", dep, resolved)
	}
}

func TestResolveDoctorRefs_DanglingDepartment(t *testing.T) {
	deps := newMockDepartmentRepo()
	svcs := newMockServiceRepo()
	_, fluShot, _ := seedCatalog(t, deps, svcs)
	svc := NewService(deps, svcs, false)

	_, _, err := svc.ResolveDoctorRefs(context.Background(), uuid.NewString(), fluShot.ID.String())
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}

	// Malformed ids count as absent, not as transport errors.
	_, _, err = svc.ResolveDoctorRefs(context.Background(), "not-a-uuid", fluShot.ID.String())
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestResolveDoctorRefs_DanglingService(t *testing.T) {
	deps := newMockDepartmentRepo()
	svcs := newMockServiceRepo()
	medicine, _, _ := seedCatalog(t, deps, svcs)
	svc := NewService(deps, svcs, false)

	_, _, err := svc.ResolveDoctorRefs(context.Background(), medicine.ID.String(), uuid.NewString())
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestResolveDoctorRefs_MismatchOnlyWhenEnforced(t *testing.T) {
	deps := newMockDepartmentRepo()
	svcs := newMockServiceRepo()
	_, fluShot, surgery := seedCatalog(t, deps, svcs)

	// Default behavior: the mismatch passes, matching the historical
	// UI-only filtering.
	lax := NewService(deps, svcs, false)
	if _, _, err := lax.ResolveDoctorRefs(context.Background(), surgery.ID.String(), fluShot.ID.String()); err != nil {
		t.Fatalf("expected mismatch to pass when not enforced, got %v", err)
	}

	strict := NewService(deps, svcs, true)
	_, _, err := strict.ResolveDoctorRefs(context.Background(), surgery.ID.String(), fluShot.ID.String())
	if !errors.Is(err, ErrServiceDepartmentMismatch) {
		t.Fatalf("expected ErrServiceDepartmentMismatch, got %v", err)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	deps := newMockDepartmentRepo()
	svcs := newMockServiceRepo()
	svc := NewService(deps, svcs, false)

	created, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if created != len(seedDepartments) {
		t.Errorf("expected %d departments created, got %d", len(seedDepartments), created)
	}

	created, err = svc.Seed(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if created != 0 {
		t.Errorf("second seed must create nothing, got %d", created)
	}
	if len(deps.items) != len(seedDepartments) {
		t.Errorf("expected %d departments total, got %d", len(seedDepartments), len(deps.items))
	}
}

func TestGrouped(t *testing.T) {
	deps := newMockDepartmentRepo()
	svcs := newMockServiceRepo()
	medicine, fluShot, surgery := seedCatalog(t, deps, svcs)
	svc := NewService(deps, svcs, false)

	groups, err := svc.Grouped(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for _, g := range groups {
		switch g.ID {
		case medicine.ID:
			if len(g.Services) != 1 || g.Services[0].ID != fluShot.ID {
				t.Errorf("medicine group: %+v", g.Services)
			}
		case surgery.ID:
			if len(g.Services) != 0 {
				t.Errorf("surgery group must be empty, got %+v", g.Services)
			}
		}
	}
}
