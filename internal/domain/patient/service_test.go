package patient

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/filestore"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

type mockUserRepo struct {
	users map[string]*identity.User
}

func (m *mockUserRepo) Create(_ context.Context, u *identity.User) error {
	if _, ok := m.users[u.PIN]; ok {
		return identity.ErrDuplicatePIN
	}
	cp := *u
	m.users[u.PIN] = &cp
	return nil
}

func (m *mockUserRepo) GetByPIN(_ context.Context, pin string) (*identity.User, error) {
	u, ok := m.users[pin]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *identity.User) error {
	if _, ok := m.users[u.PIN]; !ok {
		return identity.ErrUserNotFound
	}
	cp := *u
	m.users[u.PIN] = &cp
	return nil
}

func (m *mockUserRepo) List(context.Context) ([]*identity.User, error) {
	out := make([]*identity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type mockPatientRepo struct {
	patients map[string]*Patient
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	cp := *p
	m.patients[p.PIN] = &cp
	return nil
}

func (m *mockPatientRepo) GetByPIN(_ context.Context, pin string) (*Patient, error) {
	p, ok := m.patients[pin]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.PIN]; !ok {
		return ErrPatientNotFound
	}
	cp := *p
	m.patients[p.PIN] = &cp
	return nil
}

func (m *mockPatientRepo) List(context.Context) ([]*Patient, error) {
	out := make([]*Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "digest:" + plaintext, nil }
func (fakeHasher) Verify(digest, plaintext string) bool {
	return strings.TrimPrefix(digest, "digest:") == plaintext
}

func newService() (*Service, *mockUserRepo, *mockPatientRepo) {
	users := &mockUserRepo{users: map[string]*identity.User{}}
	patients := &mockPatientRepo{patients: map[string]*Patient{}}
	svc := NewService(patients, users, fakeHasher{}, filestore.NewInMemoryStore(), db.Passthrough, zerolog.Nop())
	return svc, users, patients
}

func registerInput() RegisterPatientInput {
	return RegisterPatientInput{
		PIN:           "123456789012",
		Password:      "Qwerty1!",
		Name:          "Ann",
		Surname:       "Lee",
		Middlename:    "Marie",
		Phone:         "+7 (900) 123-4567",
		Address:       "12 Main St",
		BloodType:     BloodAPositive,
		MartialStatus: Single,
	}
}

func TestRegister(t *testing.T) {
	svc, users, patients := newService()

	p, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatal(err)
	}
	if p.Email != nil || p.EmergencyPhone != nil {
		t.Errorf("absent optional fields must stay nil, got %+v", p)
	}

	u := users.users["123456789012"]
	if u == nil {
		t.Fatal("expected a user row")
	}
	if u.Name != "Ann Lee" || u.Role != auth.RolePatient {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.Password != "digest:Qwerty1!" {
		t.Errorf("password must be stored hashed, got %q", u.Password)
	}
	if _, ok := patients.patients["123456789012"]; !ok {
		t.Error("expected a patient row")
	}
}

func TestRegister_DuplicatePIN(t *testing.T) {
	svc, users, patients := newService()
	users.users["123456789012"] = &identity.User{PIN: "123456789012"}

	_, err := svc.Register(context.Background(), registerInput())
	if !errors.Is(err, identity.ErrDuplicatePIN) {
		t.Fatalf("expected ErrDuplicatePIN, got %v", err)
	}
	if len(patients.patients) != 0 {
		t.Error("duplicate pin must not write a patient row")
	}
}

func TestUpdate(t *testing.T) {
	svc, _, _ := newService()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatal(err)
	}

	p, err := svc.Update(context.Background(), "123456789012", UpdatePatientInput{
		Name:          "Anna",
		Surname:       "Lee",
		Middlename:    "Marie",
		Address:       "14 Main St",
		Email:         "a@x.com",
		BloodType:     BloodONegative,
		MartialStatus: Married,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Anna" || p.Address != "14 Main St" || p.BloodType != BloodONegative {
		t.Errorf("unexpected update result: %+v", p)
	}
	if p.Email == nil || *p.Email != "a@x.com" {
		t.Errorf("expected email set, got %v", p.Email)
	}
	if p.Phone != "+7 (900) 123-4567" {
		t.Errorf("phone is not editable, got %q", p.Phone)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Update(context.Background(), "999999999999", UpdatePatientInput{})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestFields_EditSchema(t *testing.T) {
	v := form.CompileEdit(Fields())

	for _, name := range []string{"pin", "password", "phone", "emergencyPhone"} {
		if v.Has(name) {
			t.Errorf("%s must not be editable", name)
		}
	}
	for _, name := range []string{"name", "surname", "middlename", "email", "address", "bloodType", "martialStatus"} {
		if !v.Has(name) {
			t.Errorf("%s must stay editable", name)
		}
	}
}

func TestBloodTypeOptions(t *testing.T) {
	opts := BloodTypeOptions()
	if len(opts) != 8 {
		t.Fatalf("expected 8 blood types, got %d", len(opts))
	}
	labels := map[string]string{}
	for _, o := range opts {
		labels[o.Value] = o.Label
	}
	if labels[string(BloodAPositive)] != "A+" || labels[string(BloodONegative)] != "O-" {
		t.Errorf("unexpected labels: %v", labels)
	}
}
