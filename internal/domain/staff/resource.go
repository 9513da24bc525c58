package staff

import (
	"context"

	"github.com/clinicdesk/clinicdesk/internal/platform/crud"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

// Resource adapts the doctor service to the administration engine. The pin
// doubles as the entity identifier: it is unique and stable.
func Resource(svc *Service, fields []form.Field) crud.Resource[*DoctorDetail] {
	return crud.Resource[*DoctorDetail]{
		Name:   "doctor",
		Fields: fields,
		ID:     func(d *DoctorDetail) string { return d.PIN },
		Values: func(d *DoctorDetail) form.Values {
			return form.Values{
				"pin":          d.PIN,
				"name":         d.Name,
				"surname":      d.Surname,
				"middlename":   d.Middlename,
				"phone":        d.Phone,
				"departmentId": d.DepartmentID.String(),
				"serviceId":    d.ServiceID.String(),
			}
		},
		List: svc.List,
		Create: func(ctx context.Context, v form.Values) (*DoctorDetail, error) {
			return svc.Register(ctx, RegisterDoctorInput{
				PIN:          v["pin"],
				Password:     v["password"],
				Name:         v["name"],
				Surname:      v["surname"],
				Middlename:   v["middlename"],
				Phone:        v["phone"],
				DepartmentID: v["departmentId"],
				ServiceID:    v["serviceId"],
				Avatar:       v["avatar"],
			})
		},
		Update: func(ctx context.Context, pin string, v form.Values) (*DoctorDetail, error) {
			return svc.Update(ctx, pin, UpdateDoctorInput{
				Name:         v["name"],
				Surname:      v["surname"],
				Middlename:   v["middlename"],
				DepartmentID: v["departmentId"],
				ServiceID:    v["serviceId"],
				Avatar:       v["avatar"],
			})
		},
	}
}
