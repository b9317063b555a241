package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omermarcel/renaltrack/internal/model"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

type mockPatientRepo struct {
	store map[string]*model.Patient
}

func (m *mockPatientRepo) List(context.Context, *model.PatientFilter) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(m.store))
	for _, p := range m.store {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPatientRepo) Get(_ context.Context, id string) (*model.Patient, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}

func (m *mockPatientRepo) Create(context.Context, *model.Patient) error { return nil }
func (m *mockPatientRepo) Update(context.Context, *model.Patient) error { return nil }
func (m *mockPatientRepo) Delete(context.Context, string) error         { return nil }
func (m *mockPatientRepo) Clear(context.Context) error                  { return nil }

type mockDoctorRepo struct {
	store map[string]*model.Doctor
}

func (m *mockDoctorRepo) List(context.Context, *model.DoctorFilter) ([]*model.Doctor, error) {
	return nil, nil
}

func (m *mockDoctorRepo) Get(_ context.Context, id string) (*model.Doctor, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return d, nil
}

func (m *mockDoctorRepo) Create(context.Context, *model.Doctor) error { return nil }
func (m *mockDoctorRepo) Update(context.Context, *model.Doctor) error { return nil }
func (m *mockDoctorRepo) Delete(context.Context, string) error        { return nil }
func (m *mockDoctorRepo) Clear(context.Context) error                 { return nil }

func newTestService() *Service {
	patient := &model.Patient{Name: "Martin Robert"}
	patient.ID = "1"
	doctor := &model.Doctor{Name: "Dr Lefèvre"}
	doctor.ID = "2"
	return NewService(
		&mockPatientRepo{store: map[string]*model.Patient{"1": patient}},
		&mockDoctorRepo{store: map[string]*model.Doctor{"2": doctor}},
	)
}

func TestResolveKnownReferences(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	patientRef, err := svc.Resolve(ctx, model.CollectionPatients, "1")
	require.NoError(t, err)
	assert.True(t, patientRef.Known)
	assert.Equal(t, "Martin Robert", patientRef.Name)

	doctorRef, err := svc.Resolve(ctx, model.CollectionDoctors, "2")
	require.NoError(t, err)
	assert.True(t, doctorRef.Known)
	assert.Equal(t, "Dr Lefèvre", doctorRef.Name)
}

func TestResolveMissingReferenceIsUnknownNotError(t *testing.T) {
	svc := newTestService()

	ref, err := svc.Doctor(context.Background(), "99")
	require.NoError(t, err)
	assert.False(t, ref.Known)
	assert.Equal(t, UnknownName, ref.Name)
	assert.Equal(t, "99", ref.ID)
}

func TestResolveUnknownCollection(t *testing.T) {
	svc := newTestService()

	_, err := svc.Resolve(context.Background(), "prescriptions", "1")
	assert.Error(t, err)
}

func TestPatientByRefMatchesIDThenName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	byID, err := svc.PatientByRef(ctx, "1")
	require.NoError(t, err)
	assert.True(t, byID.Known)

	byName, err := svc.PatientByRef(ctx, "Martin Robert")
	require.NoError(t, err)
	assert.True(t, byName.Known)
	assert.Equal(t, "1", byName.ID)

	missing, err := svc.PatientByRef(ctx, "Nobody Home")
	require.NoError(t, err)
	assert.False(t, missing.Known)
}

func TestDoctorPatientsKeepsUnknownsInPlace(t *testing.T) {
	svc := newTestService()

	doctor := &model.Doctor{PatientIDs: []string{"1", "404"}}
	refs, err := svc.DoctorPatients(context.Background(), doctor)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.True(t, refs[0].Known)
	assert.False(t, refs[1].Known)
	assert.Equal(t, UnknownName, refs[1].Name)
}
