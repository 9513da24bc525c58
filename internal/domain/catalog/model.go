package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrServiceNotFound    = errors.New("service not found")

	// ErrServiceDepartmentMismatch is raised only when the
	// ENFORCE_SERVICE_DEPARTMENT config flag is on.
	ErrServiceDepartmentMismatch = errors.New("service does not belong to department")
)

// Department owns zero or more Services. Seeded once, rarely mutated.
type Department struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Service belongs to exactly one Department.
type Service struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DepartmentID uuid.UUID `db:"department_id" json:"department_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DepartmentWithServices is the grouped read feeding dependent select
// options (pick a department, then one of its services).
type DepartmentWithServices struct {
	Department
	Services []Service `json:"services"`
}
