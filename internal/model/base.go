package model

import "time"

// Collection names. Each one is an independent table in the record store;
// there are no cross-collection transactions.
const (
	CollectionPatients     = "patients"
	CollectionDoctors      = "doctors"
	CollectionAppointments = "appointments"
	CollectionCaseStudies  = "caseStudies"
	CollectionExams        = "exams"
)

// Base contains common fields for all persisted entities. IDs are decimal
// strings assigned by the sequential allocator, never reused while the
// record is live.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateRange bounds a filter on a date field. Zero bounds are open.
type DateRange struct {
	From time.Time `json:"from" form:"from" time_format:"2006-01-02"`
	To   time.Time `json:"to" form:"to" time_format:"2006-01-02"`
}

// Contains reports whether t falls inside the range, comparing calendar
// days rather than instants.
func (r DateRange) Contains(t time.Time) bool {
	day := truncateToDay(t)
	if !r.From.IsZero() && day.Before(truncateToDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(truncateToDay(r.To)) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports calendar-day equality regardless of time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
