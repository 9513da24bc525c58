package intake

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *AppointmentRequest) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment_request (id, name, surname, phone, email, department_id, service_id, date, doctor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Name, a.Surname, a.Phone, a.Email, a.DepartmentID, a.ServiceID, a.Date, a.DoctorID)
	return err
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.name, a.surname, a.phone, a.email, a.department_id, a.service_id,
			a.date, a.doctor_id, a.created_at, d.name AS doctor_name, d.surname AS doctor_surname
		FROM appointment_request a
		LEFT JOIN doctor d ON d.id = a.doctor_id
		ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentDetail
	for rows.Next() {
		var a AppointmentDetail
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname, &a.Phone, &a.Email, &a.DepartmentID,
			&a.ServiceID, &a.Date, &a.DoctorID, &a.CreatedAt, &a.DoctorName, &a.DoctorSurname); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
