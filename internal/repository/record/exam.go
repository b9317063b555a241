package record

import (
	"context"
	"encoding/json"
	"time"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/internal/store"
	"github.com/omermarcel/renaltrack/pkg/event"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

type examRepository struct {
	store store.RecordStore
	publisher
}

func NewExamRepository(s store.RecordStore, events *event.Dispatcher) repository.ExamRepository {
	return &examRepository{
		store:     s,
		publisher: publisher{events: events, collection: model.CollectionExams},
	}
}

func (r *examRepository) List(ctx context.Context, filter *model.ExamFilter) ([]*model.Exam, error) {
	records, err := r.store.GetAll(ctx, model.CollectionExams)
	if err != nil {
		return nil, err
	}
	exams, err := decodeAll[model.Exam](model.CollectionExams, records)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return exams, nil
	}

	filtered := make([]*model.Exam, 0, len(exams))
	for _, e := range exams {
		if filter.PatientRef != "" && !containsFold(e.PatientRef, filter.PatientRef) {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if !filter.Dates.Contains(e.Date) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func (r *examRepository) Get(ctx context.Context, id string) (*model.Exam, error) {
	records, err := r.store.GetAll(ctx, model.CollectionExams)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		var exam model.Exam
		if err := json.Unmarshal(rec.Payload, &exam); err != nil {
			return nil, apperrors.Persistence("decode exam", err)
		}
		return &exam, nil
	}
	return nil, apperrors.NotFound("exam", nil)
}

func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	if err := validateExam(exam); err != nil {
		return err
	}

	records, err := r.store.GetAll(ctx, model.CollectionExams)
	if err != nil {
		return err
	}
	exam.ID = store.NextIDString(recordIDs(records))
	exam.CreatedAt = time.Now()
	exam.UpdatedAt = exam.CreatedAt

	payload, err := encode(model.CollectionExams, exam)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionExams, exam.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpCreate, exam.ID)
	return nil
}

func (r *examRepository) Update(ctx context.Context, exam *model.Exam) error {
	if err := validateExam(exam); err != nil {
		return err
	}

	found, err := exists(ctx, r.store, model.CollectionExams, exam.ID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("exam", nil)
	}
	exam.UpdatedAt = time.Now()

	payload, err := encode(model.CollectionExams, exam)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionExams, exam.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpUpdate, exam.ID)
	return nil
}

func (r *examRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, model.CollectionExams, id); err != nil {
		return err
	}
	r.publish(event.OpDelete, id)
	return nil
}

func (r *examRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx, model.CollectionExams); err != nil {
		return err
	}
	r.publish(event.OpClear, "")
	return nil
}

func validateExam(exam *model.Exam) error {
	if exam.Type == "" {
		return apperrors.Validation("exam type is required", nil)
	}
	if exam.PatientRef == "" {
		return apperrors.Validation("exam patient reference is required", nil)
	}
	if exam.Results == "" {
		return apperrors.Validation("exam results are required", nil)
	}
	return nil
}
