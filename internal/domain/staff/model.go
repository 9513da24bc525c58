package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// Doctor maps to the doctor table. The pin is shared with the doctor's User
// row and never changes after registration.
type Doctor struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PIN          string    `db:"pin" json:"pin"`
	Name         string    `db:"name" json:"name"`
	Surname      string    `db:"surname" json:"surname"`
	Middlename   string    `db:"middlename" json:"middlename"`
	Phone        string    `db:"phone" json:"phone"`
	DepartmentID uuid.UUID `db:"department_id" json:"department_id"`
	ServiceID    uuid.UUID `db:"service_id" json:"service_id"`
	AvatarKey    *string   `db:"avatar_key" json:"avatar_key,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DoctorDetail is a Doctor joined with its department and service names,
// the shape the public search returns.
type DoctorDetail struct {
	Doctor
	DepartmentName string `db:"department_name" json:"department_name"`
	ServiceName    string `db:"service_name" json:"service_name"`
}
