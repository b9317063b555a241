package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
)

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id string) error
	ListPatients(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error)
	DueForVisit(ctx context.Context, day time.Time) ([]*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		BirthDate:             req.BirthDate,
		Gender:                req.Gender,
		BloodGroup:            req.BloodGroup,
		Status:                model.PatientStatus(req.Status),
		GFR:                   req.GFR,
		Stage:                 req.Stage,
		Allergies:             req.Allergies,
		CurrentMedications:    req.CurrentMedications,
		LastConsultation:      req.LastConsultation,
		NextVisit:             req.NextVisit,
		AssignedDoctor:        req.AssignedDoctor,
		AssignedLabTechnician: req.AssignedLabTechnician,
		EmergencyContact:      req.EmergencyContact,
		ImageURL:              req.ImageURL,
	}
	if patient.Allergies == nil {
		patient.Allergies = []string{}
	}
	if patient.CurrentMedications == nil {
		patient.CurrentMedications = []string{}
	}
	if !req.LastConsultation.IsZero() {
		patient.ConsultationCount = 1
	}
	// The history starts with the intake reading so a later update can
	// already detect a decline.
	patient.GFRHistory = []float64{req.GFR}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(patient, req)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func applyPatch(patient *model.Patient, req *model.UpdatePatientRequest) {
	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		patient.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.Status != nil {
		patient.Status = model.PatientStatus(*req.Status)
	}
	if req.GFR != nil && *req.GFR != patient.GFR {
		patient.GFR = *req.GFR
		patient.GFRHistory = append(patient.GFRHistory, *req.GFR)
	}
	if req.Stage != nil {
		patient.Stage = *req.Stage
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.CurrentMedications != nil {
		patient.CurrentMedications = *req.CurrentMedications
	}
	if req.LastConsultation != nil && !req.LastConsultation.Equal(patient.LastConsultation) {
		patient.LastConsultation = *req.LastConsultation
		patient.ConsultationCount++
	}
	if req.NextVisit != nil {
		patient.NextVisit = *req.NextVisit
	}
	if req.AssignedDoctor != nil {
		patient.AssignedDoctor = *req.AssignedDoctor
	}
	if req.AssignedLabTechnician != nil {
		patient.AssignedLabTechnician = *req.AssignedLabTechnician
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.ImageURL != nil {
		patient.ImageURL = *req.ImageURL
	}
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// DueForVisit lists patients whose next visit falls on the given day.
func (s *Service) DueForVisit(ctx context.Context, day time.Time) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	due := make([]*model.Patient, 0)
	for _, p := range patients {
		if !p.NextVisit.IsZero() && model.SameDay(p.NextVisit, day) {
			due = append(due, p)
		}
	}
	return due, nil
}
