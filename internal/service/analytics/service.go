package analytics

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	"github.com/omermarcel/renaltrack/pkg/event"
	"github.com/omermarcel/renaltrack/pkg/metrics"
)

const (
	statsCacheKey  = "stats"
	chartsCacheKey = "charts"
)

// Service computes dashboard aggregates from the full patient collection.
// Results are memoized briefly and flushed whenever patients change; the
// computation itself is stateless, so a recompute from the same collection
// always yields the same result.
type Service struct {
	repo    repository.PatientRepository
	cache   *cache.Cache
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.PatientRepository, events *event.Dispatcher, m *metrics.Metrics, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	s := &Service{
		repo:    repo,
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
		now:     time.Now,
	}
	if events != nil {
		events.Subscribe(model.CollectionPatients, func(event.Change) {
			s.cache.Flush()
		})
	}
	return s
}

func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(statsCacheKey); ok {
		return cached.(*model.DashboardStats), nil
	}

	patients, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(patients, s.now())
	if s.metrics != nil {
		s.metrics.StatsRecomputes.Inc()
	}
	s.cache.SetDefault(statsCacheKey, stats)
	return stats, nil
}

func (s *Service) Charts(ctx context.Context) (*model.PatientCharts, error) {
	if cached, ok := s.cache.Get(chartsCacheKey); ok {
		return cached.(*model.PatientCharts), nil
	}

	patients, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	charts := ComputeCharts(patients, s.now())
	if s.metrics != nil {
		s.metrics.StatsRecomputes.Inc()
	}
	s.cache.SetDefault(chartsCacheKey, charts)
	return charts, nil
}

// ComputeStats derives the headline aggregates. Average GFR over an empty
// collection is 0 by definition rather than a division error.
func ComputeStats(patients []*model.Patient, now time.Time) *model.DashboardStats {
	stats := &model.DashboardStats{TotalPatients: len(patients)}

	var gfrSum float64
	weekAhead := now.AddDate(0, 0, 7)
	for _, p := range patients {
		switch p.Status {
		case model.PatientStatusCritical:
			stats.CriticalPatients++
		case model.PatientStatusStable:
			stats.StablePatients++
		}
		gfrSum += p.GFR

		if !p.NextVisit.IsZero() && !p.NextVisit.Before(startOfDay(now)) && p.NextVisit.Before(weekAhead) {
			stats.UpcomingVisits++
		}
	}
	if len(patients) > 0 {
		stats.AverageGFR = gfrSum / float64(len(patients))
	}
	return stats
}

// ComputeCharts derives the chart datasets. Every status and age-bucket
// key is present even at zero so chart axes stay stable.
func ComputeCharts(patients []*model.Patient, now time.Time) *model.PatientCharts {
	charts := &model.PatientCharts{
		StatusDistribution: make(map[model.PatientStatus]int, len(model.PatientStatuses)),
		AgeDistribution:    make(map[string]int, len(model.AgeBuckets)),
		StageDistribution:  make(map[string]int),
	}
	for _, status := range model.PatientStatuses {
		charts.StatusDistribution[status] = 0
	}
	for _, bucket := range model.AgeBuckets {
		charts.AgeDistribution[bucket] = 0
	}

	for _, p := range patients {
		if p.Status.Valid() {
			charts.StatusDistribution[p.Status]++
		}
		charts.AgeDistribution[ageBucket(p.Age(now))]++
		if !p.BirthDate.IsZero() {
			charts.MonthlyBirths[int(p.BirthDate.Month())-1]++
		}
		if p.Stage != "" {
			charts.StageDistribution[p.Stage]++
		}
	}
	return charts
}

// ageBucket assigns boundary ages to the lower band: 20 is "0-20",
// 21 is "21-40".
func ageBucket(age int) string {
	switch {
	case age <= 20:
		return "0-20"
	case age <= 40:
		return "21-40"
	case age <= 60:
		return "41-60"
	default:
		return "61+"
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
