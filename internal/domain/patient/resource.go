package patient

import (
	"context"

	"github.com/clinicdesk/clinicdesk/internal/platform/crud"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
)

// Resource adapts the patient service to the administration engine.
func Resource(svc *Service) crud.Resource[*Patient] {
	return crud.Resource[*Patient]{
		Name:   "patient",
		Fields: Fields(),
		ID:     func(p *Patient) string { return p.PIN },
		Values: func(p *Patient) form.Values {
			v := form.Values{
				"pin":           p.PIN,
				"name":          p.Name,
				"surname":       p.Surname,
				"middlename":    p.Middlename,
				"phone":         p.Phone,
				"address":       p.Address,
				"bloodType":     string(p.BloodType),
				"martialStatus": string(p.MartialStatus),
			}
			if p.Email != nil {
				v["email"] = *p.Email
			}
			if p.EmergencyPhone != nil {
				v["emergencyPhone"] = *p.EmergencyPhone
			}
			return v
		},
		List: svc.List,
		Create: func(ctx context.Context, v form.Values) (*Patient, error) {
			return svc.Register(ctx, RegisterPatientInput{
				PIN:            v["pin"],
				Password:       v["password"],
				Name:           v["name"],
				Surname:        v["surname"],
				Middlename:     v["middlename"],
				Phone:          v["phone"],
				EmergencyPhone: v["emergencyPhone"],
				Address:        v["address"],
				Email:          v["email"],
				BloodType:      BloodType(v["bloodType"]),
				MartialStatus:  MartialStatus(v["martialStatus"]),
				Avatar:         v["avatar"],
			})
		},
		Update: func(ctx context.Context, pin string, v form.Values) (*Patient, error) {
			return svc.Update(ctx, pin, UpdatePatientInput{
				Name:          v["name"],
				Surname:       v["surname"],
				Middlename:    v["middlename"],
				Address:       v["address"],
				Email:         v["email"],
				BloodType:     BloodType(v["bloodType"]),
				MartialStatus: MartialStatus(v["martialStatus"]),
				Avatar:        v["avatar"],
			})
		},
	}
}
