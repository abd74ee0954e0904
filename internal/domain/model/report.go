package model

import "strings"

// ReportStatus is the review state of a diagnostic report.
type ReportStatus string

const (
	StatusPending  ReportStatus = "Pending"
	StatusApproved ReportStatus = "Approved"
	StatusRejected ReportStatus = "Rejected"
)

// ParseReportStatus maps a raw status value to a ReportStatus.
// Matching is case-insensitive; anything unrecognized is Pending.
func ParseReportStatus(raw string) ReportStatus {
	switch {
	case strings.EqualFold(raw, "approved"):
		return StatusApproved
	case strings.EqualFold(raw, "rejected"):
		return StatusRejected
	default:
		return StatusPending
	}
}

// ValidReviewStatus reports whether s is an acceptable review decision.
func ValidReviewStatus(s string) bool {
	switch ReportStatus(s) {
	case StatusApproved, StatusRejected, StatusPending:
		return true
	default:
		return false
	}
}

// Report is the canonical projection of a diagnostic report record used for
// rendering. It is recomputed from raw API records on every fetch and is
// never persisted by this service.
type Report struct {
	ID             string       `json:"id"`
	PatientID      string       `json:"patient_id"`
	PatientName    string       `json:"patient_name"`
	DiagnosticType string       `json:"diagnostic_type"`
	Diagnosis      string       `json:"diagnosis"`
	BloodType      string       `json:"blood_type"`
	Gender         string       `json:"gender"`
	DateOfBirth    string       `json:"date_of_birth"`
	LastChecked    string       `json:"last_checked"`
	SubmittedAt    string       `json:"submitted_at"`
	ClinicID       string       `json:"clinic_id"`
	Status         ReportStatus `json:"status"`
}
