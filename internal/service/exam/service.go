package exam

import (
	"context"
	"fmt"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/internal/service/resolver"
)

type ExamService interface {
	CreateExam(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error)
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	UpdateExam(ctx context.Context, id string, req *model.UpdateExamRequest) (*model.Exam, error)
	DeleteExam(ctx context.Context, id string) error
	ListExams(ctx context.Context, filter *model.ExamFilter) ([]*model.Exam, error)
	ResolvePatient(ctx context.Context, exam *model.Exam) (resolver.Ref, error)
}

type Service struct {
	repo     repository.ExamRepository
	resolver *resolver.Service
}

func NewService(repo repository.ExamRepository, resolver *resolver.Service) *Service {
	return &Service{repo: repo, resolver: resolver}
}

func (s *Service) CreateExam(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Type:       req.Type,
		Date:       req.Date,
		PatientRef: req.PatientRef,
		Results:    req.Results,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *Service) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateExam(ctx context.Context, id string, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		exam.Type = *req.Type
	}
	if req.Date != nil {
		exam.Date = *req.Date
	}
	if req.PatientRef != nil {
		exam.PatientRef = *req.PatientRef
	}
	if req.Results != nil {
		exam.Results = *req.Results
	}
	if req.Comment != nil {
		exam.Comment = *req.Comment
	}

	if err := s.repo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *Service) DeleteExam(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	return nil
}

func (s *Service) ListExams(ctx context.Context, filter *model.ExamFilter) ([]*model.Exam, error) {
	exams, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, nil
}

// ResolvePatient resolves the exam's patient reference, which may hold an
// id or a free-typed name.
func (s *Service) ResolvePatient(ctx context.Context, exam *model.Exam) (resolver.Ref, error) {
	return s.resolver.PatientByRef(ctx, exam.PatientRef)
}
