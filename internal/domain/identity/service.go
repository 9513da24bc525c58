package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type Service struct {
	repo   UserRepository
	hasher auth.Hasher
}

func NewService(repo UserRepository, hasher auth.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Authenticate verifies a pin/password pair and returns the matching User.
// Unknown pins and wrong passwords both come back as ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, pin, password string) (*User, error) {
	u, err := s.repo.GetByPIN(ctx, pin)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !s.hasher.Verify(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Bootstrap creates the admin User if it does not already exist. Running it
// again is a no-op, so it is safe to call on every startup.
func (s *Service) Bootstrap(ctx context.Context, pin, password string) (created bool, err error) {
	_, err = s.repo.GetByPIN(ctx, pin)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, fmt.Errorf("bootstrap: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("bootstrap: hash password: %w", err)
	}
	u := &User{PIN: pin, Name: "Admin", Password: digest, Role: auth.RoleAdmin}
	if err := s.repo.Create(ctx, u); err != nil {
		// A concurrent bootstrap already created it.
		if errors.Is(err, ErrDuplicatePIN) {
			return false, nil
		}
		return false, fmt.Errorf("bootstrap: %w", err)
	}
	return true, nil
}

// RoleOf reports the stored role for a pin. It satisfies auth.Directory, so
// the authorization gate always consults the users table rather than
// trusting the role baked into a session token.
func (s *Service) RoleOf(ctx context.Context, pin string) (auth.Role, bool, error) {
	u, err := s.repo.GetByPIN(ctx, pin)
	if errors.Is(err, ErrUserNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return u.Role, true, nil
}
