package repository

import (
	"context"

	"github.com/omermarcel/renaltrack/internal/model"
)

// All repository interfaces in one file. Create assigns the id and
// timestamps on the passed entity; Update requires an existing id; Delete
// of an absent id is idempotent success. Closed-enum fields are validated
// before any write reaches the store.
type (
	// PatientRepository handles patient records
	PatientRepository interface {
		List(ctx context.Context, filter *model.PatientFilter) ([]*model.Patient, error)
		Get(ctx context.Context, id string) (*model.Patient, error)
		Create(ctx context.Context, patient *model.Patient) error
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id string) error
		Clear(ctx context.Context) error
	}

	DoctorRepository interface {
		List(ctx context.Context, filter *model.DoctorFilter) ([]*model.Doctor, error)
		Get(ctx context.Context, id string) (*model.Doctor, error)
		Create(ctx context.Context, doctor *model.Doctor) error
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id string) error
		Clear(ctx context.Context) error
	}

	AppointmentRepository interface {
		List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
		Get(ctx context.Context, id string) (*model.Appointment, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id string) error
		Clear(ctx context.Context) error
	}

	CaseStudyRepository interface {
		List(ctx context.Context, filter *model.CaseStudyFilter) ([]*model.CaseStudy, error)
		Get(ctx context.Context, id string) (*model.CaseStudy, error)
		Create(ctx context.Context, study *model.CaseStudy) error
		Update(ctx context.Context, study *model.CaseStudy) error
		Delete(ctx context.Context, id string) error
		Clear(ctx context.Context) error
	}

	ExamRepository interface {
		List(ctx context.Context, filter *model.ExamFilter) ([]*model.Exam, error)
		Get(ctx context.Context, id string) (*model.Exam, error)
		Create(ctx context.Context, exam *model.Exam) error
		Update(ctx context.Context, exam *model.Exam) error
		Delete(ctx context.Context, id string) error
		Clear(ctx context.Context) error
	}
)
