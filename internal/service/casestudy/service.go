package casestudy

import (
	"context"
	"fmt"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/internal/service/resolver"
)

type CaseStudyService interface {
	CreateCaseStudy(ctx context.Context, req *model.CreateCaseStudyRequest) (*model.CaseStudy, error)
	GetCaseStudy(ctx context.Context, id string) (*model.CaseStudy, error)
	UpdateCaseStudy(ctx context.Context, id string, req *model.UpdateCaseStudyRequest) (*model.CaseStudy, error)
	DeleteCaseStudy(ctx context.Context, id string) error
	ListCaseStudies(ctx context.Context, filter *model.CaseStudyFilter) ([]*model.CaseStudy, error)
}

type Service struct {
	repo     repository.CaseStudyRepository
	resolver *resolver.Service
}

func NewService(repo repository.CaseStudyRepository, resolver *resolver.Service) *Service {
	return &Service{repo: repo, resolver: resolver}
}

func (s *Service) CreateCaseStudy(ctx context.Context, req *model.CreateCaseStudyRequest) (*model.CaseStudy, error) {
	status := model.CaseStudyStatus(req.Status)
	if req.Status == "" {
		status = model.CaseStudyStatusActive
	}

	study := &model.CaseStudy{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Title:       req.Title,
		Description: req.Description,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Outcome:     req.Outcome,
		Status:      status,
		Tags:        req.Tags,
		Attachments: req.Attachments,
	}
	if err := s.cacheNames(ctx, study); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, study); err != nil {
		return nil, err
	}
	return study, nil
}

func (s *Service) cacheNames(ctx context.Context, study *model.CaseStudy) error {
	patientRef, err := s.resolver.Patient(ctx, study.PatientID)
	if err != nil {
		return err
	}
	study.PatientName = patientRef.Name

	if study.DoctorID != "" {
		doctorRef, err := s.resolver.Doctor(ctx, study.DoctorID)
		if err != nil {
			return err
		}
		study.DoctorName = doctorRef.Name
	}
	return nil
}

func (s *Service) GetCaseStudy(ctx context.Context, id string) (*model.CaseStudy, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateCaseStudy(ctx context.Context, id string, req *model.UpdateCaseStudyRequest) (*model.CaseStudy, error) {
	study, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil {
		study.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		study.DoctorID = *req.DoctorID
	}
	if req.Title != nil {
		study.Title = *req.Title
	}
	if req.Description != nil {
		study.Description = *req.Description
	}
	if req.Diagnosis != nil {
		study.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		study.Treatment = *req.Treatment
	}
	if req.Outcome != nil {
		study.Outcome = *req.Outcome
	}
	if req.Status != nil {
		study.Status = model.CaseStudyStatus(*req.Status)
	}
	if req.Tags != nil {
		study.Tags = *req.Tags
	}
	if req.Attachments != nil {
		study.Attachments = *req.Attachments
	}
	if req.PatientID != nil || req.DoctorID != nil {
		if err := s.cacheNames(ctx, study); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, study); err != nil {
		return nil, err
	}
	return study, nil
}

func (s *Service) DeleteCaseStudy(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete case study: %w", err)
	}
	return nil
}

func (s *Service) ListCaseStudies(ctx context.Context, filter *model.CaseStudyFilter) ([]*model.CaseStudy, error) {
	studies, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list case studies: %w", err)
	}
	return studies, nil
}
