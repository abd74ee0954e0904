package ports

import "context"

// RawRecord is a loosely-typed record as returned by the reports API.
// Field naming varies by endpoint and backing store; the normalizer maps
// these into canonical view models.
type RawRecord = map[string]any

// UploadRequest carries inputs for requesting a signed upload URL.
type UploadRequest struct {
	FileName    string `json:"filename"`
	ContentType string `json:"contentType"`
	ClinicID    string `json:"clinicId,omitempty"`
}

// UploadTarget is the signed destination returned by the reports API.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// CreateUserInput carries inputs for creating a user account.
type CreateUserInput struct {
	Email     string `json:"email"`
	RoleAlias string `json:"role"`
	ClinicID  string `json:"clinicId,omitempty"`
}

// ReportsAPI is the remote REST API this service fronts. Every call carries
// the caller's bearer token; implementations fail locally with
// NotAuthenticated before any network I/O when the token is empty.
type ReportsAPI interface {
	RequestUploadURL(ctx context.Context, token string, in UploadRequest) (UploadTarget, error)
	MyReports(ctx context.Context, token string) ([]RawRecord, error)
	ApprovedReports(ctx context.Context, token string) ([]RawRecord, error)
	AllReports(ctx context.Context, token string) ([]RawRecord, error)
	ReviewReport(ctx context.Context, token, reportID, status string) error
	DeleteReport(ctx context.Context, token, reportID string) error
	DashboardStats(ctx context.Context, token string) (RawRecord, error)
	ListUsers(ctx context.Context, token string) ([]RawRecord, error)
	CreateUser(ctx context.Context, token string, in CreateUserInput) error
	DeleteUser(ctx context.Context, token, email string) error
}

// FileUploader performs the direct transfer of file bytes to a signed URL.
type FileUploader interface {
	Upload(ctx context.Context, uploadURL, contentType string, body []byte) error
}
