package model

import "time"

type PatientStatus string

const (
	PatientStatusStable     PatientStatus = "stable"
	PatientStatusCritical   PatientStatus = "critical"
	PatientStatusMonitoring PatientStatus = "monitoring"
)

// PatientStatuses lists every valid status. Statistics must report a count
// for each one even when it is zero.
var PatientStatuses = []PatientStatus{
	PatientStatusStable,
	PatientStatusCritical,
	PatientStatusMonitoring,
}

func (s PatientStatus) Valid() bool {
	switch s {
	case PatientStatusStable, PatientStatusCritical, PatientStatusMonitoring:
		return true
	}
	return false
}

type Patient struct {
	Base
	Name                  string        `json:"name"`
	Email                 string        `json:"email"`
	Phone                 string        `json:"phone"`
	BirthDate             time.Time     `json:"birth_date"`
	Gender                string        `json:"gender"`
	BloodGroup            string        `json:"blood_group"`
	Status                PatientStatus `json:"status"`
	GFR                   float64       `json:"gfr"`
	Stage                 string        `json:"stage"`
	Allergies             []string      `json:"allergies"`
	CurrentMedications    []string      `json:"current_medications"`
	LastConsultation      time.Time     `json:"last_consultation"`
	NextVisit             time.Time     `json:"next_visit"`
	ConsultationCount     int           `json:"consultation_count"`
	AssignedDoctor        string        `json:"assigned_doctor"`
	AssignedLabTechnician string        `json:"assigned_lab_technician"`
	EmergencyContact      string        `json:"emergency_contact"`
	ImageURL              string        `json:"image_url,omitempty"`
	GFRHistory            []float64     `json:"gfr_history,omitempty"`
}

// Age derives the patient's age in whole years from the birth date. It is
// computed at read time, never stored.
func (p *Patient) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - p.BirthDate.Year()
	if age < 0 {
		return 0
	}
	return age
}

type CreatePatientRequest struct {
	Name                  string    `json:"name" binding:"required"`
	Email                 string    `json:"email" binding:"omitempty,email"`
	Phone                 string    `json:"phone"`
	BirthDate             time.Time `json:"birth_date" binding:"required"`
	Gender                string    `json:"gender"`
	BloodGroup            string    `json:"blood_group"`
	Status                string    `json:"status" binding:"required,patientstatus"`
	GFR                   float64   `json:"gfr" binding:"gte=0"`
	Stage                 string    `json:"stage"`
	Allergies             []string  `json:"allergies"`
	CurrentMedications    []string  `json:"current_medications"`
	LastConsultation      time.Time `json:"last_consultation"`
	NextVisit             time.Time `json:"next_visit"`
	AssignedDoctor        string    `json:"assigned_doctor"`
	AssignedLabTechnician string    `json:"assigned_lab_technician"`
	EmergencyContact      string    `json:"emergency_contact"`
	ImageURL              string    `json:"image_url"`
}

type UpdatePatientRequest struct {
	Name                  *string    `json:"name"`
	Email                 *string    `json:"email" binding:"omitempty,email"`
	Phone                 *string    `json:"phone"`
	BirthDate             *time.Time `json:"birth_date"`
	Gender                *string    `json:"gender"`
	BloodGroup            *string    `json:"blood_group"`
	Status                *string    `json:"status" binding:"omitempty,patientstatus"`
	GFR                   *float64   `json:"gfr" binding:"omitempty,gte=0"`
	Stage                 *string    `json:"stage"`
	Allergies             *[]string  `json:"allergies"`
	CurrentMedications    *[]string  `json:"current_medications"`
	LastConsultation      *time.Time `json:"last_consultation"`
	NextVisit             *time.Time `json:"next_visit"`
	AssignedDoctor        *string    `json:"assigned_doctor"`
	AssignedLabTechnician *string    `json:"assigned_lab_technician"`
	EmergencyContact      *string    `json:"emergency_contact"`
	ImageURL              *string    `json:"image_url"`
}

// PatientFilter narrows List results. All provided predicates are AND-ed;
// the zero filter matches everything.
type PatientFilter struct {
	Search string        `form:"search"`
	Status PatientStatus `form:"status"`
	MinAge *int          `form:"min_age"`
	MaxAge *int          `form:"max_age"`
}
