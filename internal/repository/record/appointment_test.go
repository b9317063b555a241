package record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omermarcel/renaltrack/internal/model"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

func testAppointment(patientID, doctorID string) *model.Appointment {
	return &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		Time:      "14:30",
		Duration:  30,
		Status:    model.AppointmentStatusScheduled,
		Reason:    "contrôle trimestriel",
	}
}

func TestAppointmentCreateThenGet(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t), nil)
	ctx := context.Background()

	a := testAppointment("1", "2")
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", got.PatientID)
	assert.Equal(t, "14:30", got.Time)
	assert.Equal(t, model.AppointmentStatusScheduled, got.Status)
}

func TestAppointmentCreateRejectsInvalidStatus(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t), nil)

	a := testAppointment("1", "2")
	a.Status = "pending"
	err := repo.Create(context.Background(), a)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

// Deleting a doctor must not remove appointments referencing it. The stale
// reference stays in place and resolves to "unknown" downstream.
func TestDoctorDeleteDoesNotCascadeToAppointments(t *testing.T) {
	s := newTestStore(t)
	doctors := NewDoctorRepository(s, nil)
	appointments := NewAppointmentRepository(s, nil)
	ctx := context.Background()

	doctor := &model.Doctor{
		Name:      "Dr Lefèvre",
		Email:     "lefevre@clinique.fr",
		Specialty: model.SpecialtyNephrologist,
		Status:    model.DoctorStatusActive,
	}
	require.NoError(t, doctors.Create(ctx, doctor))

	a := testAppointment("1", doctor.ID)
	require.NoError(t, appointments.Create(ctx, a))

	require.NoError(t, doctors.Delete(ctx, doctor.ID))

	remaining, err := appointments.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, doctor.ID, remaining[0].DoctorID)

	_, err = doctors.Get(ctx, doctor.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentListByDateRange(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t), nil)
	ctx := context.Background()

	early := testAppointment("1", "2")
	early.Date = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	late := testAppointment("1", "2")
	late.Date = time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, late))

	got, err := repo.List(ctx, &model.AppointmentFilter{
		Dates: model.DateRange{
			From: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)
}

func TestAppointmentListByDoctor(t *testing.T) {
	repo := NewAppointmentRepository(newTestStore(t), nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testAppointment("1", "7")))
	require.NoError(t, repo.Create(ctx, testAppointment("2", "8")))

	got, err := repo.List(ctx, &model.AppointmentFilter{DoctorID: "7"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].PatientID)
}
