package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `d.id, d.pin, d.name, d.surname, d.middlename, d.phone,
	d.department_id, d.service_id, d.avatar_key, d.created_at, d.updated_at`

const doctorDetailQuery = `
	SELECT ` + doctorCols + `, dep.name AS department_name, s.name AS service_name
	FROM doctor d
	JOIN department dep ON dep.id = d.department_id
	JOIN service s ON s.id = d.service_id`

func scanDoctorDetail(row pgx.Row) (*DoctorDetail, error) {
	var d DoctorDetail
	err := row.Scan(&d.ID, &d.PIN, &d.Name, &d.Surname, &d.Middlename, &d.Phone,
		&d.DepartmentID, &d.ServiceID, &d.AvatarKey, &d.CreatedAt, &d.UpdatedAt,
		&d.DepartmentName, &d.ServiceName)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (id, pin, name, surname, middlename, phone, department_id, service_id, avatar_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.PIN, d.Name, d.Surname, d.Middlename, d.Phone, d.DepartmentID, d.ServiceID, d.AvatarKey)
	return err
}

func (r *doctorRepoPG) GetByPIN(ctx context.Context, pin string) (*DoctorDetail, error) {
	d, err := scanDoctorDetail(r.conn(ctx).QueryRow(ctx,
		doctorDetailQuery+` WHERE d.pin = $1`, pin))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET name=$2, surname=$3, middlename=$4,
			department_id=$5, service_id=$6, avatar_key=COALESCE($7, avatar_key),
			updated_at=NOW()
		WHERE pin = $1`,
		d.PIN, d.Name, d.Surname, d.Middlename, d.DepartmentID, d.ServiceID, d.AvatarKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*DoctorDetail, error) {
	return r.queryDetails(ctx, doctorDetailQuery+` ORDER BY d.pin`)
}

func (r *doctorRepoPG) Search(ctx context.Context, query string) ([]*DoctorDetail, error) {
	pattern := "%" + query + "%"
	return r.queryDetails(ctx, doctorDetailQuery+`
		WHERE d.name ILIKE $1 OR d.surname ILIKE $1
		ORDER BY d.surname, d.name`, pattern)
}

func (r *doctorRepoPG) queryDetails(ctx context.Context, sql string, args ...interface{}) ([]*DoctorDetail, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DoctorDetail
	for rows.Next() {
		d, err := scanDoctorDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
