package intake

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrBadDate = errors.New("date must be formatted YYYY-MM-DD")

// AppointmentRequest is created by an unauthenticated caller and read-only
// afterwards except for administrative review. The requester does not have
// to be a registered patient; DoctorID is optional and never stored as an
// empty key.
type AppointmentRequest struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Surname      string     `db:"surname" json:"surname"`
	Phone        string     `db:"phone" json:"phone"`
	Email        string     `db:"email" json:"email"`
	DepartmentID uuid.UUID  `db:"department_id" json:"department_id"`
	ServiceID    uuid.UUID  `db:"service_id" json:"service_id"`
	Date         time.Time  `db:"date" json:"date"`
	DoctorID     *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// AppointmentDetail is a request joined with its doctor, when one was
// requested.
type AppointmentDetail struct {
	AppointmentRequest
	DoctorName    *string `db:"doctor_name" json:"doctor_name,omitempty"`
	DoctorSurname *string `db:"doctor_surname" json:"doctor_surname,omitempty"`
}
