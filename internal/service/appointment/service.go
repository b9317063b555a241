package appointment

import (
	"context"
	"fmt"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/internal/service/resolver"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id, reason string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
}

const defaultDurationMinutes = 30

type Service struct {
	repo     repository.AppointmentRepository
	resolver *resolver.Service
}

func NewService(repo repository.AppointmentRepository, resolver *resolver.Service) *Service {
	return &Service{repo: repo, resolver: resolver}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := model.AppointmentStatus(req.Status)
	if req.Status == "" {
		status = model.AppointmentStatusScheduled
	}
	duration := req.Duration
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	appointment := &model.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  duration,
		Status:    status,
		Reason:    req.Reason,
		Notes:     req.Notes,
	}
	if err := s.cacheNames(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// cacheNames snapshots the referenced display names onto the appointment.
// Unresolved references cache the sentinel; the ids stay authoritative.
func (s *Service) cacheNames(ctx context.Context, appointment *model.Appointment) error {
	patientRef, err := s.resolver.Patient(ctx, appointment.PatientID)
	if err != nil {
		return err
	}
	doctorRef, err := s.resolver.Doctor(ctx, appointment.DoctorID)
	if err != nil {
		return err
	}
	appointment.PatientName = patientRef.Name
	appointment.DoctorName = doctorRef.Name
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil {
		appointment.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		appointment.DoctorID = *req.DoctorID
	}
	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.Time != nil {
		appointment.Time = *req.Time
	}
	if req.Duration != nil {
		appointment.Duration = *req.Duration
	}
	if req.Status != nil {
		appointment.Status = model.AppointmentStatus(*req.Status)
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.PatientID != nil || req.DoctorID != nil {
		if err := s.cacheNames(ctx, appointment); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id, reason string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	appointment.Status = model.AppointmentStatusCancelled
	if reason != "" {
		appointment.Notes = reason
	}
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (s *Service) ListAppointments(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
