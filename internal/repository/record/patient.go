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

type patientRepository struct {
	store store.RecordStore
	publisher
}

func NewPatientRepository(s store.RecordStore, events *event.Dispatcher) repository.PatientRepository {
	return &patientRepository{
		store:     s,
		publisher: publisher{events: events, collection: model.CollectionPatients},
	}
}

func (r *patientRepository) List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error) {
	records, err := r.store.GetAll(ctx, model.CollectionPatients)
	if err != nil {
		return nil, err
	}
	patients, err := decodeAll[model.Patient](model.CollectionPatients, records)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return patients, nil
	}

	now := time.Now()
	filtered := make([]*model.Patient, 0, len(patients))
	for _, p := range patients {
		if !matchPatient(p, filter, now) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func matchPatient(p *model.Patient, f *model.PatientFilter, now time.Time) bool {
	if f.Search != "" &&
		!containsFold(p.Name, f.Search) &&
		!containsFold(p.Email, f.Search) &&
		!containsFold(p.Phone, f.Search) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinAge != nil && p.Age(now) < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && p.Age(now) > *f.MaxAge {
		return false
	}
	return true
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	records, err := r.store.GetAll(ctx, model.CollectionPatients)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		var patient model.Patient
		if err := json.Unmarshal(rec.Payload, &patient); err != nil {
			return nil, apperrors.Persistence("decode patient", err)
		}
		return &patient, nil
	}
	return nil, apperrors.NotFound("patient", nil)
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}

	records, err := r.store.GetAll(ctx, model.CollectionPatients)
	if err != nil {
		return err
	}
	patient.ID = store.NextIDString(recordIDs(records))
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	payload, err := encode(model.CollectionPatients, patient)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionPatients, patient.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpCreate, patient.ID)
	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}

	found, err := exists(ctx, r.store, model.CollectionPatients, patient.ID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("patient", nil)
	}
	patient.UpdatedAt = time.Now()

	payload, err := encode(model.CollectionPatients, patient)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionPatients, patient.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpUpdate, patient.ID)
	return nil
}

// Delete is delete-if-exists: removing an absent patient succeeds. There is
// no cascade; appointments and case studies keep their dangling reference
// and resolve it to "unknown".
func (r *patientRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, model.CollectionPatients, id); err != nil {
		return err
	}
	r.publish(event.OpDelete, id)
	return nil
}

func (r *patientRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx, model.CollectionPatients); err != nil {
		return err
	}
	r.publish(event.OpClear, "")
	return nil
}

func validatePatient(patient *model.Patient) error {
	if patient.Name == "" {
		return apperrors.Validation("patient name is required", nil)
	}
	if !patient.Status.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid patient status %q", patient.Status), nil)
	}
	if patient.GFR < 0 {
		return apperrors.Validation("gfr must be non-negative", nil)
	}
	return nil
}
