package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
		AppointmentStatusNoShow:
		return true
	}
	return false
}

type Appointment struct {
	Base
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	// Cached display names, refreshed on write. The id references remain
	// authoritative and may dangle after a delete.
	PatientName string            `json:"patient_name,omitempty"`
	DoctorName  string            `json:"doctor_name,omitempty"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"`
	Duration    int               `json:"duration"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID string    `json:"patient_id" binding:"required"`
	DoctorID  string    `json:"doctor_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Duration  int       `json:"duration" binding:"omitempty,gt=0"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	PatientID *string    `json:"patient_id"`
	DoctorID  *string    `json:"doctor_id"`
	Date      *time.Time `json:"date"`
	Time      *string    `json:"time"`
	Duration  *int       `json:"duration" binding:"omitempty,gt=0"`
	Status    *string    `json:"status"`
	Reason    *string    `json:"reason"`
	Notes     *string    `json:"notes"`
}

type AppointmentFilter struct {
	PatientID string            `form:"patient_id"`
	DoctorID  string            `form:"doctor_id"`
	Status    AppointmentStatus `form:"status"`
	Dates     DateRange
}
