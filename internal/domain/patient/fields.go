package patient

import (
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

// Fields is the patient form schema. Unlike the doctor schema, it needs no
// dependent options: blood type and martial status are fixed enums.
// The pin, both phone numbers, and the password are held back from the
// edit path.
func Fields() []form.Field {
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
		{Name: "email", Label: "Email", Kind: form.Email,
			Rule: form.Rule{MaxLen: 255}},
		{Name: "phone", Label: "Phone", Kind: form.Text, NotEditable: true,
			Rule: form.Rule{Required: true, Pattern: form.PhonePattern, Message: "phone must look like +7 (999) 999-9999"}},
		{Name: "emergencyPhone", Label: "Emergency phone", Kind: form.Text, NotEditable: true,
			Rule: form.Rule{Pattern: form.PhonePattern, Message: "phone must look like +7 (999) 999-9999"}},
		{Name: "address", Label: "Address", Kind: form.Text,
			Rule: form.Rule{Required: true, MinLen: 1, MaxLen: 255}},
		{Name: "bloodType", Label: "Blood type", Kind: form.Select,
			Rule: form.Rule{Required: true}, Options: BloodTypeOptions()},
		{Name: "martialStatus", Label: "Martial status", Kind: form.Select,
			Rule: form.Rule{Required: true}, Options: MartialStatusOptions()},
		{Name: "avatar", Label: "Avatar", Kind: form.Image, Rule: form.Rule{}},
	}
}
