package model

type CaseStudyStatus string

const (
	CaseStudyStatusActive    CaseStudyStatus = "active"
	CaseStudyStatusCompleted CaseStudyStatus = "completed"
	CaseStudyStatusArchived  CaseStudyStatus = "archived"
)

func (s CaseStudyStatus) Valid() bool {
	switch s {
	case CaseStudyStatusActive, CaseStudyStatusCompleted, CaseStudyStatusArchived:
		return true
	}
	return false
}

// Attachment is a document linked to a case study. Only metadata is kept;
// the content lives at the URL.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type CaseStudy struct {
	Base
	PatientID   string          `json:"patient_id"`
	DoctorID    string          `json:"doctor_id"`
	PatientName string          `json:"patient_name,omitempty"`
	DoctorName  string          `json:"doctor_name,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Diagnosis   string          `json:"diagnosis"`
	Treatment   string          `json:"treatment"`
	Outcome     string          `json:"outcome"`
	Status      CaseStudyStatus `json:"status"`
	Tags        []string        `json:"tags"`
	Attachments []Attachment    `json:"attachments"`
}

type CreateCaseStudyRequest struct {
	PatientID   string       `json:"patient_id" binding:"required"`
	DoctorID    string       `json:"doctor_id"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Diagnosis   string       `json:"diagnosis"`
	Treatment   string       `json:"treatment"`
	Outcome     string       `json:"outcome"`
	Status      string       `json:"status"`
	Tags        []string     `json:"tags"`
	Attachments []Attachment `json:"attachments"`
}

type UpdateCaseStudyRequest struct {
	PatientID   *string       `json:"patient_id"`
	DoctorID    *string       `json:"doctor_id"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Diagnosis   *string       `json:"diagnosis"`
	Treatment   *string       `json:"treatment"`
	Outcome     *string       `json:"outcome"`
	Status      *string       `json:"status"`
	Tags        *[]string     `json:"tags"`
	Attachments *[]Attachment `json:"attachments"`
}

type CaseStudyFilter struct {
	PatientID string          `form:"patient_id"`
	DoctorID  string          `form:"doctor_id"`
	Status    CaseStudyStatus `form:"status"`
	Search    string          `form:"search"`
	Tag       string          `form:"tag"`
}
