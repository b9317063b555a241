package doctor

import (
	"context"
	"fmt"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
)

type DoctorService interface {
	CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id string) error
	ListDoctors(ctx context.Context, filter *model.DoctorFilter) ([]*model.Doctor, error)
	AssignPatient(ctx context.Context, doctorID, patientID string) (*model.Doctor, error)
	UnassignPatient(ctx context.Context, doctorID, patientID string) (*model.Doctor, error)
}

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	status := model.DoctorStatus(req.Status)
	if req.Status == "" {
		status = model.DoctorStatusActive
	}

	doctor := &model.Doctor{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Specialty:     model.DoctorSpecialty(req.Specialty),
		Status:        status,
		LicenseNumber: req.LicenseNumber,
		Bio:           req.Bio,
		ImageURL:      req.ImageURL,
		Availability:  req.Availability,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Specialty != nil {
		doctor.Specialty = model.DoctorSpecialty(*req.Specialty)
	}
	if req.Status != nil {
		doctor.Status = model.DoctorStatus(*req.Status)
	}
	if req.LicenseNumber != nil {
		doctor.LicenseNumber = *req.LicenseNumber
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.ImageURL != nil {
		doctor.ImageURL = *req.ImageURL
	}
	if req.Availability != nil {
		doctor.Availability = *req.Availability
	}
	if req.PatientIDs != nil {
		doctor.PatientIDs = *req.PatientIDs
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (s *Service) ListDoctors(ctx context.Context, filter *model.DoctorFilter) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// AssignPatient adds the patient reference to the doctor's list. The
// patient is not checked for existence; a stale assignment resolves to
// "unknown" like any other dangling reference.
func (s *Service) AssignPatient(ctx context.Context, doctorID, patientID string) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	for _, id := range doctor.PatientIDs {
		if id == patientID {
			return doctor, nil
		}
	}
	doctor.PatientIDs = append(doctor.PatientIDs, patientID)
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) UnassignPatient(ctx context.Context, doctorID, patientID string) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	kept := doctor.PatientIDs[:0]
	for _, id := range doctor.PatientIDs {
		if id != patientID {
			kept = append(kept, id)
		}
	}
	doctor.PatientIDs = kept
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}
