package staff

import "context"

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByPIN(ctx context.Context, pin string) (*DoctorDetail, error)
	Update(ctx context.Context, d *Doctor) error
	List(ctx context.Context) ([]*DoctorDetail, error)
	// Search matches the query case-insensitively against name and surname.
	Search(ctx context.Context, query string) ([]*DoctorDetail, error)
}
