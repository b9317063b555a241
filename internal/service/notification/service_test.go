package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/pkg/event"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

var testNow = time.Date(2026, time.August, 29, 9, 30, 0, 0, time.UTC)

func findCategory(notifications []*model.Notification, category string) *model.Notification {
	for _, n := range notifications {
		if n.Category == category {
			return n
		}
	}
	return nil
}

func TestDeriveAggregatesPerRule(t *testing.T) {
	patients := []*model.Patient{
		{GFR: 25},
		{GFR: 70},
	}

	notifications := Derive(patients, testNow)
	// One aggregated notification per matching rule, not one per patient.
	require.Len(t, notifications, 2)

	atRisk := findCategory(notifications, model.CategoryAtRisk)
	require.NotNil(t, atRisk)
	assert.Equal(t, 1, atRisk.Count)
	assert.Equal(t, model.SeverityWarning, atRisk.Severity)

	stable := findCategory(notifications, model.CategoryStable)
	require.NotNil(t, stable)
	assert.Equal(t, 1, stable.Count)
	assert.Equal(t, model.SeveritySuccess, stable.Severity)
}

func TestDeriveRulesAreIndependent(t *testing.T) {
	// One patient triggering at-risk, declining and new-patient at once.
	p := &model.Patient{
		GFR:        20,
		GFRHistory: []float64{28, 20},
	}
	p.CreatedAt = testNow.Add(-48 * time.Hour)

	notifications := Derive([]*model.Patient{p}, testNow)
	require.Len(t, notifications, 3)
	assert.NotNil(t, findCategory(notifications, model.CategoryAtRisk))
	assert.NotNil(t, findCategory(notifications, model.CategoryDeclining))
	assert.NotNil(t, findCategory(notifications, model.CategoryNewPatient))
}

func TestDeriveAppointmentTodayIsCalendarDayEquality(t *testing.T) {
	sameDayLater := &model.Patient{NextVisit: time.Date(2026, time.August, 29, 23, 0, 0, 0, time.UTC)}
	tomorrow := &model.Patient{NextVisit: time.Date(2026, time.August, 30, 0, 30, 0, 0, time.UTC)}

	notifications := Derive([]*model.Patient{sameDayLater, tomorrow}, testNow)
	today := findCategory(notifications, model.CategoryAppointmentToday)
	require.NotNil(t, today)
	assert.Equal(t, 1, today.Count)
}

func TestDeriveDecliningNeedsTwoReadings(t *testing.T) {
	single := &model.Patient{GFR: 50, GFRHistory: []float64{50}}
	rising := &model.Patient{GFR: 55, GFRHistory: []float64{50, 55}}
	falling := &model.Patient{GFR: 45, GFRHistory: []float64{50, 45}}

	notifications := Derive([]*model.Patient{single, rising, falling}, testNow)
	declining := findCategory(notifications, model.CategoryDeclining)
	require.NotNil(t, declining)
	assert.Equal(t, 1, declining.Count)
}

func TestDeriveEmptyCollection(t *testing.T) {
	assert.Empty(t, Derive(nil, testNow))
}

func TestDeriveStartsUnread(t *testing.T) {
	notifications := Derive([]*model.Patient{{GFR: 70}}, testNow)
	require.NotEmpty(t, notifications)
	for _, n := range notifications {
		assert.False(t, n.Read)
	}
}

type stubPatientRepo struct {
	patients []*model.Patient
}

func (r *stubPatientRepo) List(context.Context, *model.PatientFilter) ([]*model.Patient, error) {
	return r.patients, nil
}
func (r *stubPatientRepo) Get(context.Context, string) (*model.Patient, error) { return nil, nil }
func (r *stubPatientRepo) Create(context.Context, *model.Patient) error        { return nil }
func (r *stubPatientRepo) Update(context.Context, *model.Patient) error        { return nil }
func (r *stubPatientRepo) Delete(context.Context, string) error                { return nil }
func (r *stubPatientRepo) Clear(context.Context) error                         { return nil }

func TestReadStateLostOnRebuild(t *testing.T) {
	repo := &stubPatientRepo{patients: []*model.Patient{{GFR: 70}}}
	dispatcher := event.NewDispatcher()
	svc := NewService(repo, dispatcher, nil)
	svc.now = func() time.Time { return testNow }
	ctx := context.Background()

	_, err := svc.MarkRead(ctx, model.CategoryStable)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)

	// A source-collection change rebuilds the list wholesale; read state
	// is deliberately not preserved.
	dispatcher.Publish(event.Change{Collection: model.CollectionPatients, Operation: event.OpUpdate})

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)
}

func TestMarkReadUnknownIDIsNotFound(t *testing.T) {
	svc := NewService(&stubPatientRepo{}, nil, nil)
	svc.now = func() time.Time { return testNow }

	_, err := svc.MarkRead(context.Background(), "no-such-notification")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDismissRemovesFromCurrentDerivation(t *testing.T) {
	repo := &stubPatientRepo{patients: []*model.Patient{{GFR: 25}, {GFR: 70}}}
	svc := NewService(repo, nil, nil)
	svc.now = func() time.Time { return testNow }
	ctx := context.Background()

	require.NoError(t, svc.Dismiss(ctx, model.CategoryAtRisk))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.CategoryStable, list[0].Category)
}
