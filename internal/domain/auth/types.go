package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdministrator   Role = "administrator"
	RoleStaffReviewer   Role = "staff_reviewer"
	RoleClinicSubmitter Role = "clinic_submitter"
)

// Claims is the decoded payload of an identity token.
// Adapters map provider-specific claim names into this shape; the session
// service decides what to do with it (expiry, role mapping, fallbacks).
type Claims struct {
	SubjectID  string
	Name       string
	Username   string
	Email      string
	Groups     []string
	ClinicID   string
	ClinicName string
	ExpiresAt  time.Time // absolute expiry from the IdP token
}

// Session is the server-side record derived from a stored identity token.
// ID is an opaque session identifier (random URL-safe string); the raw token
// itself stays in the token store and is re-derived on every request.
// A Session is immutable once constructed and its ExpiresAt is always in the
// future at construction time: expired tokens never produce a Session.
type Session struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	ClinicID    string    `json:"clinic_id,omitempty"`
	ClinicName  string    `json:"clinic_name,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsAdministrator reports whether the session belongs to an administrator.
func (s Session) IsAdministrator() bool { return s.Role == RoleAdministrator }

// IsClinicSubmitter reports whether the session belongs to a clinic submitter.
func (s Session) IsClinicSubmitter() bool { return s.Role == RoleClinicSubmitter }
