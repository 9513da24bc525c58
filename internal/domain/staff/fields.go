package staff

import (
	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

// Fields builds the doctor form schema. Service options are a function of
// the in-progress values: they narrow to the chosen department's services.
// The pin is the lookup key and never editable; the password never survives
// into the edit schema.
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
		{Name: "pin", Label: "PIN", Kind: form.Text, NotEditable: true,
			Rule: form.Rule{Required: true, Pattern: form.PINPattern, Message: "PIN must be a 12-digit number"}},
		{Name: "password", Label: "Password", Kind: form.Password,
			Rule: form.Rule{Required: true, MinLen: 8, MaxLen: 255}},
		{Name: "name", Label: "Name", Kind: form.Text,
			Rule: form.Rule{Required: true, MinLen: 1, MaxLen: 255}},
		{Name: "surname", Label: "Surname", Kind: form.Text,
			Rule: form.Rule{Required: true, MinLen: 1, MaxLen: 255}},
		{Name: "middlename", Label: "Middle name", Kind: form.Text,
			Rule: form.Rule{Required: true, MinLen: 1, MaxLen: 255}},
		{Name: "phone", Label: "Phone", Kind: form.Text, NotEditable: true,
			Rule: form.Rule{Required: true, Pattern: form.PhonePattern, Message: "phone must look like +7 (999) 999-9999"}},
		{Name: "departmentId", Label: "Department", Kind: form.Select,
			Rule: form.Rule{Required: true}, Options: departmentOptions},
		{Name: "serviceId", Label: "Service", Kind: form.Select,
			Rule: form.Rule{Required: true},
			OptionsFn: func(v form.Values) []form.Option {
				return servicesByDepartment[v["departmentId"]]
			}},
		{Name: "avatar", Label: "Avatar", Kind: form.Image, Rule: form.Rule{}},
	}
}
