package model

import "time"

type Exam struct {
	Base
	Type string    `json:"type"`
	Date time.Time `json:"date"`
	// PatientRef holds either a patient id or a free-typed patient name,
	// as entered on the exam form. Resolution treats a miss as "unknown".
	PatientRef string `json:"patient_ref"`
	Results    string `json:"results"`
	Comment    string `json:"comment,omitempty"`
}

type CreateExamRequest struct {
	Type       string    `json:"type" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	PatientRef string    `json:"patient_ref" binding:"required"`
	Results    string    `json:"results" binding:"required"`
	Comment    string    `json:"comment"`
}

type UpdateExamRequest struct {
	Type       *string    `json:"type"`
	Date       *time.Time `json:"date"`
	PatientRef *string    `json:"patient_ref"`
	Results    *string    `json:"results"`
	Comment    *string    `json:"comment"`
}

type ExamFilter struct {
	PatientRef string `form:"patient_ref"`
	Type       string `form:"type"`
	Dates      DateRange
}
