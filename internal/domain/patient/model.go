package patient

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

var ErrPatientNotFound = errors.New("patient not found")

type BloodType string

const (
	BloodAPositive  BloodType = "Apositive"
	BloodANegative  BloodType = "Anegative"
	BloodBPositive  BloodType = "Bpositive"
	BloodBNegative  BloodType = "Bnegative"
	BloodABPositive BloodType = "ABpositive"
	BloodABNegative BloodType = "ABnegative"
	BloodOPositive  BloodType = "Opositive"
	BloodONegative  BloodType = "Onegative"
)

// BloodTypeOptions pairs each stored value with its display label.
func BloodTypeOptions() []form.Option {
	return []form.Option{
		{Label: "A+", Value: string(BloodAPositive)},
		{Label: "A-", Value: string(BloodANegative)},
		{Label: "B+", Value: string(BloodBPositive)},
		{Label: "B-", Value: string(BloodBNegative)},
		{Label: "AB+", Value: string(BloodABPositive)},
		{Label: "AB-", Value: string(BloodABNegative)},
		{Label: "O+", Value: string(BloodOPositive)},
		{Label: "O-", Value: string(BloodONegative)},
	}
}

// MartialStatus keeps the historical spelling of the stored enum.
type MartialStatus string

const (
	Married MartialStatus = "MARRIED"
	Single  MartialStatus = "SINGLE"
)

func MartialStatusOptions() []form.Option {
	return []form.Option{
		{Label: "Married", Value: string(Married)},
		{Label: "Single", Value: string(Single)},
	}
}

// Patient maps to the patient table. The pin is shared with the patient's
// User row and never changes after registration.
type Patient struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	PIN            string        `db:"pin" json:"pin"`
	Name           string        `db:"name" json:"name"`
	Surname        string        `db:"surname" json:"surname"`
	Middlename     string        `db:"middlename" json:"middlename"`
	Phone          string        `db:"phone" json:"phone"`
	EmergencyPhone *string       `db:"emergency_phone" json:"emergency_phone,omitempty"`
	Address        string        `db:"address" json:"address"`
	Email          *string       `db:"email" json:"email,omitempty"`
	BloodType      BloodType     `db:"blood_type" json:"blood_type"`
	MartialStatus  MartialStatus `db:"martial_status" json:"martial_status"`
	AvatarKey      *string       `db:"avatar_key" json:"avatar_key,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}
