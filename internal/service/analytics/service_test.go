package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/pkg/event"
)

var testNow = time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

func patientWith(status model.PatientStatus, gfr float64, birthYear int) *model.Patient {
	return &model.Patient{
		Status:    status,
		GFR:       gfr,
		BirthDate: time.Date(birthYear, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestComputeStatsAggregates(t *testing.T) {
	patients := []*model.Patient{
		patientWith(model.PatientStatusStable, 70, 1960),
		patientWith(model.PatientStatusCritical, 22, 1950),
		patientWith(model.PatientStatusStable, 65, 1980),
		patientWith(model.PatientStatusMonitoring, 43, 1990),
	}

	stats := ComputeStats(patients, testNow)
	assert.Equal(t, 4, stats.TotalPatients)
	assert.Equal(t, 1, stats.CriticalPatients)
	assert.Equal(t, 2, stats.StablePatients)
	assert.InDelta(t, 50.0, stats.AverageGFR, 0.001)
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil, testNow)
	assert.Equal(t, 0, stats.TotalPatients)
	assert.Equal(t, 0.0, stats.AverageGFR)
}

func TestStatusDistributionAlwaysHasAllKeys(t *testing.T) {
	patients := []*model.Patient{
		patientWith(model.PatientStatusStable, 70, 1960),
		patientWith(model.PatientStatusCritical, 22, 1950),
		patientWith(model.PatientStatusStable, 65, 1980),
		patientWith(model.PatientStatusMonitoring, 43, 1990),
	}

	charts := ComputeCharts(patients, testNow)
	assert.Equal(t, 2, charts.StatusDistribution[model.PatientStatusStable])
	assert.Equal(t, 1, charts.StatusDistribution[model.PatientStatusCritical])
	assert.Equal(t, 1, charts.StatusDistribution[model.PatientStatusMonitoring])

	empty := ComputeCharts(nil, testNow)
	for _, status := range model.PatientStatuses {
		count, ok := empty.StatusDistribution[status]
		assert.True(t, ok, "missing status key %q", status)
		assert.Zero(t, count)
	}
}

func TestAgeBucketBoundaries(t *testing.T) {
	aged20 := patientWith(model.PatientStatusStable, 80, testNow.Year()-20)
	aged21 := patientWith(model.PatientStatusStable, 80, testNow.Year()-21)

	charts := ComputeCharts([]*model.Patient{aged20, aged21}, testNow)
	assert.Equal(t, 1, charts.AgeDistribution["0-20"])
	assert.Equal(t, 1, charts.AgeDistribution["21-40"])
	assert.Equal(t, 0, charts.AgeDistribution["41-60"])
}

func TestMonthlyBirthsIndexZeroIsJanuary(t *testing.T) {
	january := &model.Patient{
		Status:    model.PatientStatusStable,
		BirthDate: time.Date(1970, time.January, 3, 0, 0, 0, 0, time.UTC),
	}
	december := &model.Patient{
		Status:    model.PatientStatusStable,
		BirthDate: time.Date(1985, time.December, 25, 0, 0, 0, 0, time.UTC),
	}

	charts := ComputeCharts([]*model.Patient{january, december}, testNow)
	assert.Equal(t, 1, charts.MonthlyBirths[0])
	assert.Equal(t, 1, charts.MonthlyBirths[11])
}

func TestComputeStatsIsDeterministic(t *testing.T) {
	patients := []*model.Patient{
		patientWith(model.PatientStatusStable, 70, 1960),
		patientWith(model.PatientStatusCritical, 22, 1950),
	}

	first := ComputeStats(patients, testNow)
	second := ComputeStats(patients, testNow)
	assert.Equal(t, first, second)
}

type stubPatientRepo struct {
	patients []*model.Patient
	listCall int
}

func (r *stubPatientRepo) List(context.Context, *model.PatientFilter) ([]*model.Patient, error) {
	r.listCall++
	return r.patients, nil
}
func (r *stubPatientRepo) Get(context.Context, string) (*model.Patient, error) { return nil, nil }
func (r *stubPatientRepo) Create(context.Context, *model.Patient) error        { return nil }
func (r *stubPatientRepo) Update(context.Context, *model.Patient) error        { return nil }
func (r *stubPatientRepo) Delete(context.Context, string) error                { return nil }
func (r *stubPatientRepo) Clear(context.Context) error                         { return nil }

func TestStatsCacheFlushedOnPatientChange(t *testing.T) {
	repo := &stubPatientRepo{patients: []*model.Patient{patientWith(model.PatientStatusStable, 70, 1960)}}
	dispatcher := event.NewDispatcher()
	svc := NewService(repo, dispatcher, nil, time.Minute)
	ctx := context.Background()

	_, err := svc.Stats(ctx)
	require.NoError(t, err)
	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCall, "second call should be served from cache")

	dispatcher.Publish(event.Change{Collection: model.CollectionPatients, Operation: event.OpCreate})

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCall, "change must force a recompute")
}
