package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/filestore"
)

type Service struct {
	patients PatientRepository
	users    identity.UserRepository
	hasher   auth.Hasher
	files    filestore.FileStore
	inTx     db.Runner
	log      zerolog.Logger
}

func NewService(
	patients PatientRepository,
	users identity.UserRepository,
	hasher auth.Hasher,
	files filestore.FileStore,
	inTx db.Runner,
	log zerolog.Logger,
) *Service {
	return &Service{
		patients: patients,
		users:    users,
		hasher:   hasher,
		files:    files,
		inTx:     inTx,
		log:      log,
	}
}

type RegisterPatientInput struct {
	PIN            string
	Password       string
	Name           string
	Surname        string
	Middlename     string
	Phone          string
	EmergencyPhone string
	Address        string
	Email          string
	BloodType      BloodType
	MartialStatus  MartialStatus
	Avatar         string // base64 data URL, optional
}

type UpdatePatientInput struct {
	Name          string
	Surname       string
	Middlename    string
	Address       string
	Email         string
	BloodType     BloodType
	MartialStatus MartialStatus
	Avatar        string // base64 data URL, optional
}

// Register mirrors doctor registration without referential resolution:
// duplicate-pin fast path, hash, then User + Patient in one transaction.
func (s *Service) Register(ctx context.Context, in RegisterPatientInput) (*Patient, error) {
	if _, err := s.users.GetByPIN(ctx, in.PIN); err == nil {
		return nil, identity.ErrDuplicatePIN
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		return nil, fmt.Errorf("register patient: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register patient: hash password: %w", err)
	}

	avatar, avatarKey := s.decodeAvatar(in.Avatar, in.PIN)

	p := &Patient{
		PIN:            in.PIN,
		Name:           in.Name,
		Surname:        in.Surname,
		Middlename:     in.Middlename,
		Phone:          in.Phone,
		EmergencyPhone: optional(in.EmergencyPhone),
		Address:        in.Address,
		Email:          optional(in.Email),
		BloodType:      in.BloodType,
		MartialStatus:  in.MartialStatus,
		AvatarKey:      avatarKey,
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
		return s.patients.Create(txCtx, p)
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicatePIN) {
			return nil, identity.ErrDuplicatePIN
		}
		return nil, fmt.Errorf("register patient: %w", err)
	}

	s.storeAvatar(ctx, avatar, avatarKey)

	return p, nil
}

// Update edits a patient addressed by pin. Pin, phones and password are not
// part of the edit payload.
func (s *Service) Update(ctx context.Context, pin string, in UpdatePatientInput) (*Patient, error) {
	current, err := s.patients.GetByPIN(ctx, pin)
	if err != nil {
		return nil, err
	}

	avatar, avatarKey := s.decodeAvatar(in.Avatar, pin)

	current.Name = in.Name
	current.Surname = in.Surname
	current.Middlename = in.Middlename
	current.Address = in.Address
	current.Email = optional(in.Email)
	current.BloodType = in.BloodType
	current.MartialStatus = in.MartialStatus
	if avatarKey != nil {
		current.AvatarKey = avatarKey
	}
	if err := s.patients.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update patient %s: %w", pin, err)
	}

	s.storeAvatar(ctx, avatar, avatarKey)

	return current, nil
}

func (s *Service) Get(ctx context.Context, pin string) (*Patient, error) {
	return s.patients.GetByPIN(ctx, pin)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
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

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
