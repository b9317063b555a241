package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/pkg/event"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
	"github.com/omermarcel/renaltrack/pkg/metrics"
)

// GFR thresholds driving the at-risk and stable rules, mL/min/1.73m².
const (
	gfrCriticalBelow = 30
	gfrStableAbove   = 60
)

const newPatientWindow = 7 * 24 * time.Hour

// Service derives the notification list from the patient collection. The
// list is rebuilt wholesale whenever patients change; read and dismissed
// state intentionally does not survive a rebuild.
type Service struct {
	repo    repository.PatientRepository
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.Mutex
	current []*model.Notification
	fresh   bool
}

func NewService(repo repository.PatientRepository, events *event.Dispatcher, m *metrics.Metrics) *Service {
	s := &Service{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
	if events != nil {
		events.Subscribe(model.CollectionPatients, func(event.Change) {
			s.Invalidate()
		})
	}
	return s
}

// Invalidate discards the current derivation; the next List rebuilds it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.fresh = false
	s.mu.Unlock()
}

func (s *Service) List(ctx context.Context) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fresh {
		patients, err := s.repo.List(ctx, nil)
		if err != nil {
			return nil, err
		}
		s.current = Derive(patients, s.now())
		s.fresh = true
		if s.metrics != nil {
			s.metrics.NotificationDerivations.Inc()
		}
	}

	out := make([]*model.Notification, len(s.current))
	copy(out, s.current)
	return out, nil
}

// MarkRead flags one notification of the current derivation as read.
func (s *Service) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	if _, err := s.List(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.current {
		if n.ID == id {
			n.Read = true
			return n, nil
		}
	}
	return nil, apperrors.NotFound("notification", nil)
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	if _, err := s.List(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.current {
		n.Read = true
	}
	return nil
}

// Dismiss drops a notification from the current derivation. It reappears
// on the next rebuild if its rule still matches.
func (s *Service) Dismiss(ctx context.Context, id string) error {
	if _, err := s.List(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.current {
		if n.ID == id {
			s.current = append(s.current[:i], s.current[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("notification", nil)
}

// Derive scans the patient collection against the threshold rules. Rules
// are independent; a patient can count toward several. Each rule emits at
// most one notification carrying the number of matching patients.
func Derive(patients []*model.Patient, now time.Time) []*model.Notification {
	var (
		atRisk    int
		stable    int
		today     int
		recent    int
		declining int
	)
	for _, p := range patients {
		if p.GFR < gfrCriticalBelow {
			atRisk++
		}
		if p.GFR > gfrStableAbove {
			stable++
		}
		if !p.NextVisit.IsZero() && model.SameDay(p.NextVisit, now) {
			today++
		}
		if !p.CreatedAt.IsZero() && now.Sub(p.CreatedAt) < newPatientWindow {
			recent++
		}
		if gfrDeclining(p.GFRHistory) {
			declining++
		}
	}

	notifications := make([]*model.Notification, 0, 5)
	add := func(category string, severity model.NotificationSeverity, title, message string, count int) {
		if count == 0 {
			return
		}
		notifications = append(notifications, &model.Notification{
			ID:        category,
			Category:  category,
			Severity:  severity,
			Title:     title,
			Message:   message,
			Count:     count,
			Timestamp: now,
			Read:      false,
		})
	}

	add(model.CategoryAtRisk, model.SeverityWarning, "Patients at risk",
		fmt.Sprintf("%d patient(s) have a GFR below 30 mL/min/1.73m² and need immediate attention.", atRisk), atRisk)
	add(model.CategoryAppointmentToday, model.SeverityInfo, "Appointments today",
		fmt.Sprintf("You have %d visit(s) scheduled today.", today), today)
	add(model.CategoryDeclining, model.SeverityWarning, "Declining GFR",
		fmt.Sprintf("%d patient(s) show a drop in their latest GFR reading.", declining), declining)
	add(model.CategoryNewPatient, model.SeveritySuccess, "New patients",
		fmt.Sprintf("%d new patient(s) added this week.", recent), recent)
	add(model.CategoryStable, model.SeveritySuccess, "Stable patients",
		fmt.Sprintf("%d patient(s) have a GFR above 60 mL/min/1.73m² and are considered stable.", stable), stable)
	return notifications
}

// gfrDeclining reports whether the last two history readings decreased.
func gfrDeclining(history []float64) bool {
	if len(history) < 2 {
		return false
	}
	return history[len(history)-1] < history[len(history)-2]
}
