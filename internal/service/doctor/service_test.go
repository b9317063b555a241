package doctor

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omermarcel/renaltrack/internal/model"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

type mockDoctorRepo struct {
	store  map[string]*model.Doctor
	nextID int
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{store: make(map[string]*model.Doctor), nextID: 1}
}

func (m *mockDoctorRepo) List(context.Context, *model.DoctorFilter) ([]*model.Doctor, error) {
	out := make([]*model.Doctor, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDoctorRepo) Get(_ context.Context, id string) (*model.Doctor, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	clone := *d
	return &clone, nil
}

func (m *mockDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	if !d.Status.Valid() {
		return apperrors.Validation("invalid doctor status", nil)
	}
	d.ID = strconv.Itoa(m.nextID)
	m.nextID++
	d.CreatedAt = time.Now()
	m.store[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	if _, ok := m.store[d.ID]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	m.store[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id string) error {
	delete(m.store, id)
	return nil
}

func (m *mockDoctorRepo) Clear(context.Context) error {
	m.store = make(map[string]*model.Doctor)
	return nil
}

func TestCreateDoctorDefaultsStatus(t *testing.T) {
	svc := NewService(newMockDoctorRepo())

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		Name:      "Dr. Ada Osei",
		Specialty: "nephrologist",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DoctorStatusActive, created.Status)
}

func TestAssignPatientDeduplicates(t *testing.T) {
	svc := NewService(newMockDoctorRepo())

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		Name:      "Dr. Ben Ito",
		Specialty: "nephrologist",
	})
	require.NoError(t, err)

	doctor, err := svc.AssignPatient(context.Background(), created.ID, "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, doctor.PatientIDs)

	// Assigning the same patient again is a no-op.
	doctor, err = svc.AssignPatient(context.Background(), created.ID, "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, doctor.PatientIDs)
}

func TestUnassignPatient(t *testing.T) {
	svc := NewService(newMockDoctorRepo())

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		Name:      "Dr. Cara Lund",
		Specialty: "generalist",
	})
	require.NoError(t, err)

	_, err = svc.AssignPatient(context.Background(), created.ID, "3")
	require.NoError(t, err)
	_, err = svc.AssignPatient(context.Background(), created.ID, "5")
	require.NoError(t, err)

	doctor, err := svc.UnassignPatient(context.Background(), created.ID, "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, doctor.PatientIDs)

	// Unassigning an id that was never assigned leaves the list alone.
	doctor, err = svc.UnassignPatient(context.Background(), created.ID, "9")
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, doctor.PatientIDs)
}

func TestAssignPatientUnknownDoctor(t *testing.T) {
	svc := NewService(newMockDoctorRepo())

	_, err := svc.AssignPatient(context.Background(), "42", "1")
	assert.True(t, apperrors.IsNotFound(err))
}
