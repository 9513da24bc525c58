package catalog

import (
	"context"
	"errors"
	"fmt"
)

type seedDepartment struct {
	name        string
	description string
	services    []string
}

var seedDepartments = []seedDepartment{
	{"Medicine", "Medicine department", []string{
		"lab services", "flu shot", "joint injections", "palliative care"}},
	{"Surgery", "Surgery department", []string{
		"cancer surgery", "plastic surgery", "digestive surgery", "heart surgery"}},
	{"Gynecology", "Gynecology department", []string{
		"wellness exam", "endometrial ablation", "pre- and post- menopause",
		"sexually transmitted infection (STI) screening and treatment"}},
	{"Obstetrics", "Obstetrics department", []string{
		"pregnancy care", "prenatal care", "normal delivery", "cesarean section"}},
	{"Pediatrics", "Pediatrics department", []string{
		"well-child visit", "after hours care", "immunization", "prenatal visit"}},
	{"Radiology", "Radiology department", []string{
		"MRI", "ultrasound", "Computer Tomography scanning", "X-ray scanning"}},
	{"Eye", "Eye department", []string{
		"cycloscopy", "gonioscopy", "skiascopy", "optical coherence tomography"}},
	{"ENT", "ENT department", []string{
		"diagnostic endoscopic examination", "foreign body removal", "laryngoscopy", "tympanometry"}},
	{"Dental", "Dental department", []string{
		"teeth cleaning", "tooth extraction", "teeth whitening", "root canal therapy"}},
	{"Orthopedics", "Orthopedics department", []string{
		"fracture care", "joint fusion", "ligament reconstruction", "bunionectomy"}},
	{"Neurology", "Neurology department", []string{
		"General neurology consultation", "Neuromuscular disorders treatment",
		"Epilepsy treatment", "Neurosurgery"}},
	{"Cardiology", "Cardiology department", []string{
		"General cardiology consultation", "ardiac rehabilitation",
		"Heart rhythm monitoring", "Echocardiography", "Stenting"}},
	{"Psychiatry", "Psychiatry department", []string{
		"Consultation", "Child consultation", "Transcranial magnetic stimulation", "Neurofeedback"}},
	{"Skin", "Skin department", []string{
		"Medical skin consultation", "Ultrasound Treatment",
		"Radio-Frequency Treatment", "Light Sources Treatment"}},
}

// Seed inserts the stock departments and their services. Departments that
// already exist (matched by name) are skipped with their services, so the
// seed can run on every bootstrap.
func (s *CatalogService) Seed(ctx context.Context) (createdDepartments int, err error) {
	for _, sd := range seedDepartments {
		_, err := s.departments.GetByName(ctx, sd.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrDepartmentNotFound) {
			return createdDepartments, fmt.Errorf("seed: lookup department %s: %w", sd.name, err)
		}

		dep := &Department{Name: sd.name, Description: sd.description}
		if err := s.departments.Create(ctx, dep); err != nil {
			return createdDepartments, fmt.Errorf("seed: create department %s: %w", sd.name, err)
		}
		for _, name := range sd.services {
			svc := &Service{Name: name, DepartmentID: dep.ID}
			if err := s.services.Create(ctx, svc); err != nil {
				return createdDepartments, fmt.Errorf("seed: create service %s: %w", name, err)
			}
		}
		createdDepartments++
	}
	return createdDepartments, nil
}
