package model

// User is the canonical projection of a user account record.
// Constructed per-render from raw directory records; never persisted.
type User struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	ClinicID    string `json:"clinic_id"`
	CreatedAt   string `json:"created_at"`
}
