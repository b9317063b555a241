package model

type DoctorStatus string

const (
	DoctorStatusActive   DoctorStatus = "active"
	DoctorStatusInactive DoctorStatus = "inactive"
	DoctorStatusOnLeave  DoctorStatus = "on-leave"
)

func (s DoctorStatus) Valid() bool {
	switch s {
	case DoctorStatusActive, DoctorStatusInactive, DoctorStatusOnLeave:
		return true
	}
	return false
}

type DoctorSpecialty string

const (
	SpecialtyNephrologist    DoctorSpecialty = "nephrologist"
	SpecialtyGeneralist      DoctorSpecialty = "generalist"
	SpecialtyCardiologist    DoctorSpecialty = "cardiologist"
	SpecialtyEndocrinologist DoctorSpecialty = "endocrinologist"
)

func (s DoctorSpecialty) Valid() bool {
	switch s {
	case SpecialtyNephrologist, SpecialtyGeneralist, SpecialtyCardiologist, SpecialtyEndocrinologist:
		return true
	}
	return false
}

// TimeSlot is a working interval within a day, "15:04" formatted.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability maps lowercase weekday names to working slots.
type Availability map[string][]TimeSlot

type Doctor struct {
	Base
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Specialty     DoctorSpecialty `json:"specialty"`
	Status        DoctorStatus    `json:"status"`
	LicenseNumber string          `json:"license_number"`
	Bio           string          `json:"bio,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	Availability  Availability    `json:"availability,omitempty"`
	// PatientIDs may reference patients that no longer exist; consumers
	// resolve them to "unknown" rather than failing.
	PatientIDs []string `json:"patient_ids"`
}

type CreateDoctorRequest struct {
	Name          string       `json:"name" binding:"required"`
	Email         string       `json:"email" binding:"required,email"`
	Phone         string       `json:"phone"`
	Specialty     string       `json:"specialty" binding:"required"`
	Status        string       `json:"status"`
	LicenseNumber string       `json:"license_number"`
	Bio           string       `json:"bio"`
	ImageURL      string       `json:"image_url"`
	Availability  Availability `json:"availability"`
}

type UpdateDoctorRequest struct {
	Name          *string       `json:"name"`
	Email         *string       `json:"email" binding:"omitempty,email"`
	Phone         *string       `json:"phone"`
	Specialty     *string       `json:"specialty"`
	Status        *string       `json:"status"`
	LicenseNumber *string       `json:"license_number"`
	Bio           *string       `json:"bio"`
	ImageURL      *string       `json:"image_url"`
	Availability  *Availability `json:"availability"`
	PatientIDs    *[]string     `json:"patient_ids"`
}

type DoctorFilter struct {
	Search    string          `form:"search"`
	Status    DoctorStatus    `form:"status"`
	Specialty DoctorSpecialty `form:"specialty"`
}
