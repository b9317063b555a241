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

type appointmentRepository struct {
	store store.RecordStore
	publisher
}

func NewAppointmentRepository(s store.RecordStore, events *event.Dispatcher) repository.AppointmentRepository {
	return &appointmentRepository{
		store:     s,
		publisher: publisher{events: events, collection: model.CollectionAppointments},
	}
}

func (r *appointmentRepository) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	records, err := r.store.GetAll(ctx, model.CollectionAppointments)
	if err != nil {
		return nil, err
	}
	appointments, err := decodeAll[model.Appointment](model.CollectionAppointments, records)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return appointments, nil
	}

	filtered := make([]*model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if !filter.Dates.Contains(a.Date) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	records, err := r.store.GetAll(ctx, model.CollectionAppointments)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		var appointment model.Appointment
		if err := json.Unmarshal(rec.Payload, &appointment); err != nil {
			return nil, apperrors.Persistence("decode appointment", err)
		}
		return &appointment, nil
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if err := validateAppointment(appointment); err != nil {
		return err
	}

	records, err := r.store.GetAll(ctx, model.CollectionAppointments)
	if err != nil {
		return err
	}
	appointment.ID = store.NextIDString(recordIDs(records))
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	payload, err := encode(model.CollectionAppointments, appointment)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionAppointments, appointment.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpCreate, appointment.ID)
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	if err := validateAppointment(appointment); err != nil {
		return err
	}

	found, err := exists(ctx, r.store, model.CollectionAppointments, appointment.ID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("appointment", nil)
	}
	appointment.UpdatedAt = time.Now()

	payload, err := encode(model.CollectionAppointments, appointment)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, model.CollectionAppointments, appointment.ID, payload); err != nil {
		return err
	}
	r.publish(event.OpUpdate, appointment.ID)
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, model.CollectionAppointments, id); err != nil {
		return err
	}
	r.publish(event.OpDelete, id)
	return nil
}

func (r *appointmentRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx, model.CollectionAppointments); err != nil {
		return err
	}
	r.publish(event.OpClear, "")
	return nil
}

// validateAppointment checks shape only. Doctor and patient references are
// deliberately not checked for existence: a dangling reference is legal and
// resolves to "unknown".
func validateAppointment(appointment *model.Appointment) error {
	if appointment.PatientID == "" {
		return apperrors.Validation("appointment patient reference is required", nil)
	}
	if appointment.DoctorID == "" {
		return apperrors.Validation("appointment doctor reference is required", nil)
	}
	if !appointment.Status.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid appointment status %q", appointment.Status), nil)
	}
	if appointment.Duration < 0 {
		return apperrors.Validation("appointment duration must be non-negative", nil)
	}
	return nil
}
