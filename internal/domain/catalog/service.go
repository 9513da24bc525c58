package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type CatalogService struct {
	departments DepartmentRepository
	services    ServiceRepository

	// enforceServiceDepartment turns the resolver's department/service
	// consistency check on. Off by default: historically only the select
	// options filtered by department, nothing checked at write time.
	enforceServiceDepartment bool
}

func NewService(departments DepartmentRepository, services ServiceRepository, enforceServiceDepartment bool) *CatalogService {
	return &CatalogService{
		departments:              departments,
		services:                 services,
		enforceServiceDepartment: enforceServiceDepartment,
	}
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]*Department, error) {
	return s.departments.List(ctx)
}

func (s *CatalogService) ListServicesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*Service, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.services.ListByDepartment(ctx, departmentID)
}

// Grouped returns every department with its services, the shape the
// dependent select options are built from.
func (s *CatalogService) Grouped(ctx context.Context) ([]DepartmentWithServices, error) {
	deps, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	svcs, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}
	byDep := map[uuid.UUID][]Service{}
	for _, sv := range svcs {
		byDep[sv.DepartmentID] = append(byDep[sv.DepartmentID], *sv)
	}
	out := make([]DepartmentWithServices, 0, len(deps))
	for _, d := range deps {
		out = append(out, DepartmentWithServices{Department: *d, Services: byDep[d.ID]})
	}
	return out, nil
}

// ResolveDoctorRefs checks that the department and service a doctor is being
// written with actually exist, before anything is persisted. Malformed ids
// count as absent. The cross-check that the service belongs to the
// department only runs when the config flag enables it.
func (s *CatalogService) ResolveDoctorRefs(ctx context.Context, departmentID, serviceID string) (*Department, *Service, error) {
	depID, err := uuid.Parse(departmentID)
	if err != nil {
		return nil, nil, ErrDepartmentNotFound
	}
	dep, err := s.departments.GetByID(ctx, depID)
	if err != nil {
		return nil, nil, err
	}

	svcID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, nil, ErrServiceNotFound
	}
	svc, err := s.services.GetByID(ctx, svcID)
	if err != nil {
		return nil, nil, err
	}

	if s.enforceServiceDepartment && svc.DepartmentID != dep.ID {
		return nil, nil, fmt.Errorf("%w: service %s belongs to department %s",
			ErrServiceDepartmentMismatch, svc.ID, svc.DepartmentID)
	}
	return dep, svc, nil
}
