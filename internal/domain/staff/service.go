package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/filestore"
)

type Service struct {
	doctors DoctorRepository
	users   identity.UserRepository
	catalog *catalog.CatalogService
	hasher  auth.Hasher
	files   filestore.FileStore
	inTx    db.Runner
	log     zerolog.Logger
}

func NewService(
	doctors DoctorRepository,
	users identity.UserRepository,
	cat *catalog.CatalogService,
	hasher auth.Hasher,
	files filestore.FileStore,
	inTx db.Runner,
	log zerolog.Logger,
) *Service {
	return &Service{
		doctors: doctors,
		users:   users,
		catalog: cat,
		hasher:  hasher,
		files:   files,
		inTx:    inTx,
		log:     log,
	}
}

type RegisterDoctorInput struct {
	PIN          string
	Password     string
	Name         string
	Surname      string
	Middlename   string
	Phone        string
	DepartmentID string
	ServiceID    string
	Avatar       string // base64 data URL, optional
}

type UpdateDoctorInput struct {
	Name         string
	Surname      string
	Middlename   string
	DepartmentID string
	ServiceID    string
	Avatar       string // base64 data URL, optional
}

// Register creates the doctor's User and Doctor rows in one transaction.
// The duplicate-pin fast path and the referential checks run first, so a
// failure there writes nothing; the unique index on users.pin remains the
// authoritative duplicate check under concurrency. The avatar upload happens
// after commit and never fails the registration.
func (s *Service) Register(ctx context.Context, in RegisterDoctorInput) (*DoctorDetail, error) {
	if _, err := s.users.GetByPIN(ctx, in.PIN); err == nil {
		return nil, identity.ErrDuplicatePIN
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		return nil, fmt.Errorf("register doctor: %w", err)
	}

	dep, svc, err := s.catalog.ResolveDoctorRefs(ctx, in.DepartmentID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register doctor: hash password: %w", err)
	}

	avatar, avatarKey := s.decodeAvatar(in.Avatar, in.PIN)

	doctor := &Doctor{
		PIN:          in.PIN,
		Name:         in.Name,
		Surname:      in.Surname,
		Middlename:   in.Middlename,
		Phone:        in.Phone,
		DepartmentID: dep.ID,
		ServiceID:    svc.ID,
		AvatarKey:    avatarKey,
	}
	err = s.inTx(ctx, func(txCtx context.Context) error {
		user := &identity.User{
			PIN:      in.PIN,
			Name:     in.Name + " " + in.Surname,
			Password: digest,
			Role:     auth.RolePatient,
		}
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}
		return s.doctors.Create(txCtx, doctor)
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicatePIN) {
			return nil, identity.ErrDuplicatePIN
		}
		return nil, fmt.Errorf("register doctor: %w", err)
	}

	s.storeAvatar(ctx, avatar, avatarKey)

	return &DoctorDetail{Doctor: *doctor, DepartmentName: dep.Name, ServiceName: svc.Name}, nil
}

// Update edits a doctor addressed by pin. The pin itself, the phone and the
// password are not part of the edit payload.
func (s *Service) Update(ctx context.Context, pin string, in UpdateDoctorInput) (*DoctorDetail, error) {
	dep, svc, err := s.catalog.ResolveDoctorRefs(ctx, in.DepartmentID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	current, err := s.doctors.GetByPIN(ctx, pin)
	if err != nil {
		return nil, err
	}

	avatar, avatarKey := s.decodeAvatar(in.Avatar, pin)

	current.Name = in.Name
	current.Surname = in.Surname
	current.Middlename = in.Middlename
	current.DepartmentID = dep.ID
	current.ServiceID = svc.ID
	if avatarKey != nil {
		current.AvatarKey = avatarKey
	}
	if err := s.doctors.Update(ctx, &current.Doctor); err != nil {
		return nil, fmt.Errorf("update doctor %s: %w", pin, err)
	}

	s.storeAvatar(ctx, avatar, avatarKey)

	current.DepartmentName = dep.Name
	current.ServiceName = svc.Name
	return current, nil
}

func (s *Service) Get(ctx context.Context, pin string) (*DoctorDetail, error) {
	return s.doctors.GetByPIN(ctx, pin)
}

// Search is public: no caller required.
func (s *Service) Search(ctx context.Context, query string) ([]*DoctorDetail, error) {
	return s.doctors.Search(ctx, query)
}

func (s *Service) List(ctx context.Context) ([]*DoctorDetail, error) {
	return s.doctors.List(ctx)
}

func (s *Service) decodeAvatar(dataURL, pin string) (*filestore.Upload, *string) {
	if dataURL == "" {
		return nil, nil
	}
	upload, err := filestore.ParseDataURL(dataURL)
	if err != nil {
		s.log.Warn().Err(err).Str("pin", pin).Msg("skipping undecodable avatar")
		return nil, nil
	}
	key := filestore.AvatarKey(pin)
	return upload, &key
}

func (s *Service) storeAvatar(ctx context.Context, upload *filestore.Upload, key *string) {
	if upload == nil || key == nil {
		return
	}
	if err := s.files.Put(ctx, *key, upload.Data); err != nil {
		s.log.Warn().Err(err).Str("key", *key).Msg("avatar upload failed, record stands")
	}
}
