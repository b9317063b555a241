package record

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/internal/store"
	"github.com/omermarcel/renaltrack/pkg/event"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

type caseStudyRepository struct {
	store store.RecordStore
	publisher
}

func NewCaseStudyRepository(s store.RecordStore, events *event.Dispatcher) repository.CaseStudyRepository {
	return &caseStudyRepository{
		store:     s,
		publisher: publisher{events: events, collection: model.CollectionCaseStudies},
	}
}

func (r *caseStudyRepository) List(ctx context.Context, filter *model.CaseStudyFilter) ([]*model.CaseStudy, error) {
	records, err := r.store.GetAll(ctx, model.CollectionCaseStudies)
	if err != nil {
		return nil, err
	}
	studies, err := decodeAll[model.CaseStudy](model.CollectionCaseStudies, records)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return studies, nil
	}

	filtered := make([]*model.CaseStudy, 0, len(studies))
	for _, cs := range studies {
		if filter.PatientID != "" && cs.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && cs.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && cs.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!containsFold(cs.Title, filter.Search) &&
			!containsFold(cs.Diagnosis, filter.Search) {
			continue
		}
		if filter.Tag != "" && !hasTag(cs.Tags, filter.Tag) {
			continue
		}
		filtered = append(filtered, cs)
	}
	return filtered, nil
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func (r *caseStudyRepository) Get(ctx context.Context, id string) (*model.CaseStudy, error) {
	records, err := r.store.GetAll(ctx, model.CollectionCaseStudies)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		var study model.CaseStudy
		if err := json.Unmarshal(rec.Payload, &study); err != nil {
			return nil, apperrors.Persistence("decode case study", err)
		}
		return &study, nil
	}
	return nil, apperrors.NotFound("case study", nil)
}

func (r *caseStudyRepository) Create(ctx context.Context, study *model.CaseStudy) error {
	if err := validateCaseStudy(study); err != nil {
		return err
	}

	records, err := r.store.GetAll(ctx, model.CollectionCaseStudies)
	if err != nil {
		return err
	}
	study.ID = store.NextIDString(recordIDs(records))
	study.CreatedAt = time.Now()
	study.UpdatedAt = study.CreatedAt
	if study.Tags == nil {
		study.Tags = []string{}
	}
	if study.Attachments == nil {
		study.Attachments = []model.Attachment{}
	}

	payload, err := encode(model.CollectionCaseStudies, study)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionCaseStudies, study.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpCreate, study.ID)
	return nil
}

func (r *caseStudyRepository) Update(ctx context.Context, study *model.CaseStudy) error {
	if err := validateCaseStudy(study); err != nil {
		return err
	}

	found, err := exists(ctx, r.store, model.CollectionCaseStudies, study.ID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("case study", nil)
	}
	study.UpdatedAt = time.Now()

	payload, err := encode(model.CollectionCaseStudies, study)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionCaseStudies, study.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpUpdate, study.ID)
	return nil
}

func (r *caseStudyRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, model.CollectionCaseStudies, id); err != nil {
		return err
	}
	r.publish(event.OpDelete, id)
	return nil
}

func (r *caseStudyRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx, model.CollectionCaseStudies); err != nil {
		return err
	}
	r.publish(event.OpClear, "")
	return nil
}

func validateCaseStudy(study *model.CaseStudy) error {
	if study.Title == "" {
		return apperrors.Validation("case study title is required", nil)
	}
	if study.PatientID == "" {
		return apperrors.Validation("case study patient reference is required", nil)
	}
	if !study.Status.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid case study status %q", study.Status), nil)
	}
	return nil
}
