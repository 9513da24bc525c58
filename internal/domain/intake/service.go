package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrBadDoctorRef = errors.New("doctor reference is not valid")

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

type SubmitInput struct {
	Name         string
	Surname      string
	Phone        string
	Email        string
	DepartmentID string
	ServiceID    string
	Date         string // calendar date, YYYY-MM-DD
	DoctorID     string // optional
}

// Submit persists a public appointment request. An empty doctor id means
// no linkage; it is stored as NULL, never as an empty key. There is no
// duplicate-submission suppression.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*AppointmentRequest, error) {
	depID, err := uuid.Parse(in.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("submit appointment: department id: %w", err)
	}
	svcID, err := uuid.Parse(in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("submit appointment: service id: %w", err)
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, ErrBadDate
	}

	var doctorID *uuid.UUID
	if in.DoctorID != "" {
		id, err := uuid.Parse(in.DoctorID)
		if err != nil {
			return nil, ErrBadDoctorRef
		}
		doctorID = &id
	}

	a := &AppointmentRequest{
		Name:         in.Name,
		Surname:      in.Surname,
		Phone:        in.Phone,
		Email:        in.Email,
		DepartmentID: depID,
		ServiceID:    svcID,
		Date:         date,
		DoctorID:     doctorID,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("submit appointment: %w", err)
	}
	return a, nil
}

// Review lists every request for administrative triage, joined with the
// requested doctor when there is one.
func (s *Service) Review(ctx context.Context) ([]*AppointmentDetail, error) {
	return s.appointments.List(ctx)
}
