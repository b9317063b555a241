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

type doctorRepository struct {
	store store.RecordStore
	publisher
}

func NewDoctorRepository(s store.RecordStore, events *event.Dispatcher) repository.DoctorRepository {
	return &doctorRepository{
		store:     s,
		publisher: publisher{events: events, collection: model.CollectionDoctors},
	}
}

func (r *doctorRepository) List(ctx context.Context, filter *model.DoctorFilter) ([]*model.Doctor, error) {
	records, err := r.store.GetAll(ctx, model.CollectionDoctors)
	if err != nil {
		return nil, err
	}
	doctors, err := decodeAll[model.Doctor](model.CollectionDoctors, records)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return doctors, nil
	}

	filtered := make([]*model.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if filter.Search != "" &&
			!containsFold(d.Name, filter.Search) &&
			!containsFold(d.Email, filter.Search) &&
			!containsFold(d.Phone, filter.Search) {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

func (r *doctorRepository) Get(ctx context.Context, id string) (*model.Doctor, error) {
	records, err := r.store.GetAll(ctx, model.CollectionDoctors)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		var doctor model.Doctor
		if err := json.Unmarshal(rec.Payload, &doctor); err != nil {
			return nil, apperrors.Persistence("decode doctor", err)
		}
		return &doctor, nil
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}

	records, err := r.store.GetAll(ctx, model.CollectionDoctors)
	if err != nil {
		return err
	}
	doctor.ID = store.NextIDString(recordIDs(records))
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt
	if doctor.PatientIDs == nil {
		doctor.PatientIDs = []string{}
	}

	payload, err := encode(model.CollectionDoctors, doctor)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionDoctors, doctor.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpCreate, doctor.ID)
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}

	found, err := exists(ctx, r.store, model.CollectionDoctors, doctor.ID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("doctor", nil)
	}
	doctor.UpdatedAt = time.Now()

	payload, err := encode(model.CollectionDoctors, doctor)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionDoctors, doctor.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpUpdate, doctor.ID)
	return nil
}

// Delete does not cascade to appointments or case studies referencing the
// doctor; those references resolve to "unknown" afterward.
func (r *doctorRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, model.CollectionDoctors, id); err != nil {
		return err
	}
	r.publish(event.OpDelete, id)
	return nil
}

func (r *doctorRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx, model.CollectionDoctors); err != nil {
		return err
	}
	r.publish(event.OpClear, "")
	return nil
}

func validateDoctor(doctor *model.Doctor) error {
	if doctor.Name == "" {
		return apperrors.Validation("doctor name is required", nil)
	}
	if !doctor.Status.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid doctor status %q", doctor.Status), nil)
	}
	if !doctor.Specialty.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid doctor specialty %q", doctor.Specialty), nil)
	}
	return nil
}
