package model

import "time"

type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeveritySuccess NotificationSeverity = "success"
)

// Notification categories. Each derivation rule emits at most one
// notification, keyed by its category.
const (
	CategoryAtRisk           = "at-risk"
	CategoryStable           = "stable"
	CategoryAppointmentToday = "appointment-today"
	CategoryNewPatient       = "new-patient"
	CategoryDeclining        = "declining"
)

// Notification is an aggregated alert derived from the patient collection.
// The list is rebuilt wholesale whenever patients change; read state does
// not survive a rebuild.
type Notification struct {
	ID        string               `json:"id"`
	Category  string               `json:"category"`
	Severity  NotificationSeverity `json:"severity"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Count     int                  `json:"count"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
}
