package reportsapi

// Package reportsapi contains a hand-written test double for the remote
// reports API and the direct file uploader. Function fields override
// individual operations; unset operations return empty results.

import (
	"context"

	"github.com/medisys/reports-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.ReportsAPI   = (*Fake)(nil)
	_ ports.FileUploader = (*FakeUploader)(nil)
)

// Fake is a configurable reports API double. Calls records every method
// invocation in order for assertions on call sequencing.
type Fake struct {
	RequestUploadURLFunc func(ctx context.Context, token string, in ports.UploadRequest) (ports.UploadTarget, error)
	MyReportsFunc        func(ctx context.Context, token string) ([]ports.RawRecord, error)
	ApprovedReportsFunc  func(ctx context.Context, token string) ([]ports.RawRecord, error)
	AllReportsFunc       func(ctx context.Context, token string) ([]ports.RawRecord, error)
	ReviewReportFunc     func(ctx context.Context, token, reportID, status string) error
	DeleteReportFunc     func(ctx context.Context, token, reportID string) error
	DashboardStatsFunc   func(ctx context.Context, token string) (ports.RawRecord, error)
	ListUsersFunc        func(ctx context.Context, token string) ([]ports.RawRecord, error)
	CreateUserFunc       func(ctx context.Context, token string, in ports.CreateUserInput) error
	DeleteUserFunc       func(ctx context.Context, token, email string) error

	Calls []string
}

func (f *Fake) record(name string) { f.Calls = append(f.Calls, name) }

func (f *Fake) RequestUploadURL(
	ctx context.Context,
	token string,
	in ports.UploadRequest,
) (ports.UploadTarget, error) {
	f.record("RequestUploadURL")
	if f.RequestUploadURLFunc != nil {
		return f.RequestUploadURLFunc(ctx, token, in)
	}
	return ports.UploadTarget{UploadURL: "https://uploads.example.com/signed", Key: "uploads/fake.csv"}, nil
}

func (f *Fake) MyReports(ctx context.Context, token string) ([]ports.RawRecord, error) {
	f.record("MyReports")
	if f.MyReportsFunc != nil {
		return f.MyReportsFunc(ctx, token)
	}
	return nil, nil
}

func (f *Fake) ApprovedReports(ctx context.Context, token string) ([]ports.RawRecord, error) {
	f.record("ApprovedReports")
	if f.ApprovedReportsFunc != nil {
		return f.ApprovedReportsFunc(ctx, token)
	}
	return nil, nil
}

func (f *Fake) AllReports(ctx context.Context, token string) ([]ports.RawRecord, error) {
	f.record("AllReports")
	if f.AllReportsFunc != nil {
		return f.AllReportsFunc(ctx, token)
	}
	return nil, nil
}

func (f *Fake) ReviewReport(ctx context.Context, token, reportID, status string) error {
	f.record("ReviewReport")
	if f.ReviewReportFunc != nil {
		return f.ReviewReportFunc(ctx, token, reportID, status)
	}
	return nil
}

func (f *Fake) DeleteReport(ctx context.Context, token, reportID string) error {
	f.record("DeleteReport")
	if f.DeleteReportFunc != nil {
		return f.DeleteReportFunc(ctx, token, reportID)
	}
	return nil
}

func (f *Fake) DashboardStats(ctx context.Context, token string) (ports.RawRecord, error) {
	f.record("DashboardStats")
	if f.DashboardStatsFunc != nil {
		return f.DashboardStatsFunc(ctx, token)
	}
	return ports.RawRecord{}, nil
}

func (f *Fake) ListUsers(ctx context.Context, token string) ([]ports.RawRecord, error) {
	f.record("ListUsers")
	if f.ListUsersFunc != nil {
		return f.ListUsersFunc(ctx, token)
	}
	return nil, nil
}

func (f *Fake) CreateUser(ctx context.Context, token string, in ports.CreateUserInput) error {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, token, in)
	}
	return nil
}

func (f *Fake) DeleteUser(ctx context.Context, token, email string) error {
	f.record("DeleteUser")
	if f.DeleteUserFunc != nil {
		return f.DeleteUserFunc(ctx, token, email)
	}
	return nil
}

// FakeUploader is a configurable file uploader double.
type FakeUploader struct {
	UploadFunc func(ctx context.Context, uploadURL, contentType string, body []byte) error

	Calls int
}

func (f *FakeUploader) Upload(ctx context.Context, uploadURL, contentType string, body []byte) error {
	f.Calls++
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, uploadURL, contentType, body)
	}
	return nil
}
