package intake

import (
	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

// Fields is the public appointment form schema. doctorId is free-form and
// optional: the page lets the requester pick a doctor from search results
// but submits fine without one.
func Fields(groups []catalog.DepartmentWithServices) []form.Field {
	departmentOptions := make([]form.Option, 0, len(groups))
	servicesByDepartment := make(map[string][]form.Option, len(groups))
	for _, g := range groups {
		id := g.ID.String()
		departmentOptions = append(departmentOptions, form.Option{Label: g.Name, Value: id})
		for _, s := range g.Services {
			servicesByDepartment[id] = append(servicesByDepartment[id],
				form.Option{Label: s.Name, Value: s.ID.String()})
		}
	}

	return []form.Field{
		{Name: "name", Label: "Name", Kind: form.Text,
			Rule: form.Rule{Required: true, MinLen: 1, MaxLen: 255}},
		{Name: "surname", Label: "Surname", Kind: form.Text,
			Rule: form.Rule{Required: true, MinLen: 1, MaxLen: 255}},
		{Name: "phone", Label: "Phone", Kind: form.Text,
			Rule: form.Rule{Required: true, Pattern: form.PhonePattern, Message: "phone must look like +7 (999) 999-9999"}},
		{Name: "email", Label: "Email", Kind: form.Email,
			Rule: form.Rule{Required: true, MaxLen: 255}},
		{Name: "departmentId", Label: "Department", Kind: form.Select,
			Rule: form.Rule{Required: true}, Options: departmentOptions},
		{Name: "serviceId", Label: "Service", Kind: form.Select,
			Rule: form.Rule{Required: true},
			OptionsFn: func(v form.Values) []form.Option {
				return servicesByDepartment[v["departmentId"]]
			}},
		{Name: "date", Label: "Date", Kind: form.Text,
			Rule: form.Rule{Required: true, Pattern: form.DatePattern, Message: "date must be formatted YYYY-MM-DD"}},
		{Name: "doctorId", Label: "Doctor", Kind: form.Text, Rule: form.Rule{}},
	}
}
