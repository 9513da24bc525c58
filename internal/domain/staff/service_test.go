package staff

import (
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/crud"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/filestore"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

type mockUserRepo struct {
	users map[string]*identity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*identity.User{}}
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

type mockDoctorRepo struct {
	doctors map[string]*DoctorDetail
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: map[string]*DoctorDetail{}}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	m.doctors[d.PIN] = &DoctorDetail{Doctor: *d}
	return nil
}

func (m *mockDoctorRepo) GetByPIN(_ context.Context, pin string) (*DoctorDetail, error) {
	d, ok := m.doctors[pin]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, d *Doctor) error {
	cur, ok := m.doctors[d.PIN]
	if !ok {
		return ErrDoctorNotFound
	}
	cur.Doctor = *d
	return nil
}

func (m *mockDoctorRepo) List(context.Context) ([]*DoctorDetail, error) {
	out := make([]*DoctorDetail, 0, len(m.doctors))
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDoctorRepo) Search(_ context.Context, query string) ([]*DoctorDetail, error) {
	q := strings.ToLower(query)
	var out []*DoctorDetail
	for _, d := range m.doctors {
		if strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Surname), q) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PIN < out[j].PIN })
	return out, nil
}

type mockDepartmentRepo struct {
	items map[uuid.UUID]*catalog.Department
}

func (m *mockDepartmentRepo) Create(_ context.Context, d *catalog.Department) error {
	d.ID = uuid.New()
	m.items[d.ID] = d
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uuid.UUID) (*catalog.Department, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, catalog.ErrDepartmentNotFound
	}
	return d, nil
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, name string) (*catalog.Department, error) {
	for _, d := range m.items {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, catalog.ErrDepartmentNotFound
}

func (m *mockDepartmentRepo) List(context.Context) ([]*catalog.Department, error) {
	out := make([]*catalog.Department, 0, len(m.items))
	for _, d := range m.items {
		out = append(out, d)
	}
	return out, nil
}

type mockServiceRepo struct {
	items map[uuid.UUID]*catalog.Service
}

func (m *mockServiceRepo) Create(_ context.Context, s *catalog.Service) error {
	s.ID = uuid.New()
	m.items[s.ID] = s
	return nil
}

func (m *mockServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return s, nil
}

func (m *mockServiceRepo) ListByDepartment(_ context.Context, departmentID uuid.UUID) ([]*catalog.Service, error) {
	var out []*catalog.Service
	for _, s := range m.items {
		if s.DepartmentID == departmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockServiceRepo) List(context.Context) ([]*catalog.Service, error) {
	out := make([]*catalog.Service, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "digest:" + plaintext, nil }
func (fakeHasher) Verify(digest, plaintext string) bool {
	return strings.TrimPrefix(digest, "digest:") == plaintext
}

type fixture struct {
	users    *mockUserRepo
	doctors  *mockDoctorRepo
	files    *filestore.InMemoryStore
	svc      *Service
	medicine *catalog.Department
	fluShot  *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	deps := &mockDepartmentRepo{items: map[uuid.UUID]*catalog.Department{}}
	svcs := &mockServiceRepo{items: map[uuid.UUID]*catalog.Service{}}

	medicine := &catalog.Department{Name: "Medicine", Description: "Medicine department"}
	deps.Create(context.Background(), medicine)
	fluShot := &catalog.Service{Name: "flu shot", DepartmentID: medicine.ID}
	svcs.Create(context.Background(), fluShot)

	users := newMockUserRepo()
	doctors := newMockDoctorRepo()
	files := filestore.NewInMemoryStore()
	cat := catalog.NewService(deps, svcs, false)

	return &fixture{
		users:    users,
		doctors:  doctors,
		files:    files,
		svc:      NewService(doctors, users, cat, fakeHasher{}, files, db.Passthrough, zerolog.Nop()),
		medicine: medicine,
		fluShot:  fluShot,
	}
}

func (f *fixture) registerInput() RegisterDoctorInput {
	return RegisterDoctorInput{
		PIN:          "123456789012",
		Password:     "Qwerty1!",
		Name:         "Ann",
		Surname:      "Lee",
		Middlename:   "Marie",
		Phone:        "+7 (900) 123-4567",
		DepartmentID: f.medicine.ID.String(),
		ServiceID:    f.fluShot.ID.String(),
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Register(context.Background(), f.registerInput())
	if err != nil {
		t.Fatal(err)
	}
	if d.DepartmentName != "Medicine" || d.ServiceName != "flu shot" {
		t.Errorf("expected joined names, got %+v", d)
	}

	u := f.users.users["123456789012"]
	if u == nil {
		t.Fatal("expected a user row")
	}
	if u.Name != "Ann Lee" {
		t.Errorf("user name must be name+surname, got %q", u.Name)
	}
	if u.Role != auth.RolePatient {
		t.Errorf("doctors log in with role PATIENT, got %q", u.Role)
	}
	if u.Password != "digest:Qwerty1!" {
		t.Errorf("password must be stored hashed, got %q", u.Password)
	}
	if _, ok := f.doctors.doctors["123456789012"]; !ok {
		t.Error("expected a doctor row")
	}
}

func TestRegister_DuplicatePIN(t *testing.T) {
	f := newFixture(t)
	f.users.users["123456789012"] = &identity.User{PIN: "123456789012"}

	_, err := f.svc.Register(context.Background(), f.registerInput())
	if !errors.Is(err, identity.ErrDuplicatePIN) {
		t.Fatalf("expected ErrDuplicatePIN, got %v", err)
	}
	if len(f.doctors.doctors) != 0 {
		t.Error("duplicate pin must not write a doctor row")
	}
	if len(f.users.users) != 1 {
		t.Error("duplicate pin must not write a user row")
	}
}

func TestRegister_DanglingDepartment(t *testing.T) {
	f := newFixture(t)
	in := f.registerInput()
	in.DepartmentID = uuid.NewString()

	_, err := f.svc.Register(context.Background(), in)
	if !errors.Is(err, catalog.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
	if len(f.users.users) != 0 || len(f.doctors.doctors) != 0 {
		t.Error("dangling department must abort before any write")
	}
}

func TestRegister_StoresAvatar(t *testing.T) {
	f := newFixture(t)
	in := f.registerInput()
	in.Avatar = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	d, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if d.AvatarKey == nil || *d.AvatarKey != "avatars/123456789012" {
		t.Fatalf("expected avatar key, got %v", d.AvatarKey)
	}
	data, err := f.files.Get(context.Background(), *d.AvatarKey)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected stored avatar: %q", data)
	}
}

func TestRegister_BadAvatarSkipped(t *testing.T) {
	f := newFixture(t)
	in := f.registerInput()
	in.Avatar = "not-a-data-url"

	d, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if d.AvatarKey != nil {
		t.Errorf("undecodable avatar must be skipped, got key %v", d.AvatarKey)
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Register(context.Background(), f.registerInput()); err != nil {
		t.Fatal(err)
	}

	d, err := f.svc.Update(context.Background(), "123456789012", UpdateDoctorInput{
		Name:         "Anna",
		Surname:      "Lee",
		Middlename:   "Marie",
		DepartmentID: f.medicine.ID.String(),
		ServiceID:    f.fluShot.ID.String(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Anna" {
		t.Errorf("expected updated name, got %q", d.Name)
	}
	if d.Phone != "+7 (900) 123-4567" {
		t.Errorf("phone is not editable, got %q", d.Phone)
	}
}

func TestSearch_CaseInsensitiveWithJoinedNames(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Register(context.Background(), f.registerInput()); err != nil {
		t.Fatal(err)
	}
	// The mock join is filled in the way the SQL join would.
	f.doctors.doctors["123456789012"].DepartmentName = "Medicine"
	f.doctors.doctors["123456789012"].ServiceName = "flu shot"

	hits, err := f.svc.Search(context.Background(), "lee")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %d", len(hits))
	}
	if hits[0].Surname != "Lee" || hits[0].DepartmentName != "Medicine" || hits[0].ServiceName != "flu shot" {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
}

func TestEngine_UnauthorizedRegisterWritesNothing(t *testing.T) {
	f := newFixture(t)

	gate := auth.NewGate(roleDirectory{})
	groups := []catalog.DepartmentWithServices{{
		Department: *f.medicine,
		Services:   []catalog.Service{*f.fluShot},
	}}
	eng := crud.New(Resource(f.svc, Fields(groups)), func(ctx context.Context) error {
		_, err := gate.RequireAdmin(ctx)
		return err
	}, nil)

	payload := form.Values{
		"pin": "123456789012", "password": "Qwerty1!", "name": "Ann",
		"surname": "Lee", "middlename": "Marie", "phone": "+7 (900) 123-4567",
		"departmentId": f.medicine.ID.String(), "serviceId": f.fluShot.ID.String(),
	}

	// No caller in context at all.
	_, _, err := eng.SubmitCreate(context.Background(), payload)
	if !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// A caller whose stored role is not ADMIN.
	ctx := auth.WithCaller(context.Background(), auth.Identity{PIN: "222222222222", Role: auth.RoleAdmin})
	_, _, err = eng.SubmitCreate(ctx, payload)
	if !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if len(f.users.users) != 0 || len(f.doctors.doctors) != 0 {
		t.Error("unauthorized registration must not write")
	}
}

// roleDirectory knows one patient pin and nothing else.
type roleDirectory struct{}

func (roleDirectory) RoleOf(_ context.Context, pin string) (auth.Role, bool, error) {
	if pin == "222222222222" {
		return auth.RolePatient, true, nil
	}
	return "", false, nil
}
