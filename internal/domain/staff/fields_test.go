package staff

import (
	"testing"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/platform/form"
	"github.com/google/uuid"
)

func TestFields_DependentServiceOptions(t *testing.T) {
	medicineID := uuid.New()
	surgeryID := uuid.New()
	fluShotID := uuid.New()
	heartID := uuid.New()

	groups := []catalog.DepartmentWithServices{
		{Department: catalog.Department{ID: medicineID, Name: "Medicine"},
			Services: []catalog.Service{{ID: fluShotID, Name: "flu shot", DepartmentID: medicineID}}},
		{Department: catalog.Department{ID: surgeryID, Name: "Surgery"},
			Services: []catalog.Service{{ID: heartID, Name: "heart surgery", DepartmentID: surgeryID}}},
	}

	var serviceField form.Field
	for _, f := range Fields(groups) {
		if f.Name == "serviceId" {
			serviceField = f
		}
	}
	if serviceField.OptionsFn == nil {
		t.Fatal("service options must depend on the in-progress values")
	}

	opts := serviceField.ResolveOptions(form.Values{"departmentId": medicineID.String()})
	if len(opts) != 1 || opts[0].Value != fluShotID.String() {
		t.Errorf("expected medicine services only, got %v", opts)
	}
	if opts := serviceField.ResolveOptions(form.Values{}); len(opts) != 0 {
		t.Errorf("no department chosen yet, expected no options, got %v", opts)
	}
}

func TestFields_EditSchema(t *testing.T) {
	v := form.CompileEdit(Fields(nil))

	for _, name := range []string{"pin", "password", "phone"} {
		if v.Has(name) {
			t.Errorf("%s must not be editable", name)
		}
	}
	for _, name := range []string{"name", "surname", "middlename", "departmentId", "serviceId"} {
		if !v.Has(name) {
			t.Errorf("%s must stay editable", name)
		}
	}
}
