package identity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

var (
	// ErrDuplicatePIN means a User with that pin already exists. The unique
	// index on users.pin is the authoritative check; callers may also hit
	// this from the service-level fast path.
	ErrDuplicatePIN = errors.New("pin already registered")

	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown pin and wrong password so
	// the login response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User maps to the users table. Every Doctor and Patient shares a pin with
// exactly one User; the pin is the business key across the system.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PIN       string    `db:"pin" json:"pin"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"`
	Role      auth.Role `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
