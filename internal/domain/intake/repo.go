package intake

import "context"

type AppointmentRepository interface {
	Create(ctx context.Context, a *AppointmentRequest) error
	List(ctx context.Context) ([]*AppointmentDetail, error)
}
