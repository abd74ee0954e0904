package httpx

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/domain/model"
	"github.com/medisys/reports-ui-api/internal/ports"
	"github.com/medisys/reports-ui-api/internal/service"
)

// fakeSessionService is a test double for SessionServiceInterface.
type fakeSessionService struct {
	completeLoginFunc func(ctx context.Context, rawToken string) (*service.CompleteLoginResult, error)
	deriveSessionFunc func(ctx context.Context, sessionID string) (*service.DeriveResult, error)
	logoutFunc        func(ctx context.Context, sessionID string) error

	logoutCalls []string
}

func (f *fakeSessionService) CompleteLogin(ctx context.Context, rawToken string) (*service.CompleteLoginResult, error) {
	if f.completeLoginFunc != nil {
		return f.completeLoginFunc(ctx, rawToken)
	}
	return &service.CompleteLoginResult{Session: testSession(domainauth.RoleAdministrator)}, nil
}

func (f *fakeSessionService) DeriveSession(ctx context.Context, sessionID string) (*service.DeriveResult, error) {
	if f.deriveSessionFunc != nil {
		return f.deriveSessionFunc(ctx, sessionID)
	}
	return nil, nil
}

func (f *fakeSessionService) Logout(ctx context.Context, sessionID string) error {
	f.logoutCalls = append(f.logoutCalls, sessionID)
	if f.logoutFunc != nil {
		return f.logoutFunc(ctx, sessionID)
	}
	return nil
}

// sessionServiceFor returns a double whose DeriveSession yields the given
// session for any non-empty session id.
func sessionServiceFor(session domainauth.Session) *fakeSessionService {
	return &fakeSessionService{
		deriveSessionFunc: func(_ context.Context, sessionID string) (*service.DeriveResult, error) {
			if sessionID == "" {
				return nil, nil
			}
			return &service.DeriveResult{Session: session, RawToken: "raw-token"}, nil
		},
	}
}

func testSession(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID:          "sess-1",
		SubjectID:   "u1",
		DisplayName: "Ada Clark",
		Email:       "a@x.com",
		Role:        role,
		ClinicID:    "CLINIC_7",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

// fakeReportService is a test double for ReportServiceInterface.
type fakeReportService struct {
	myReportsFunc       func(ctx context.Context, token string) ([]model.Report, error)
	approvedReportsFunc func(ctx context.Context, token string) ([]model.Report, error)
	allReportsFunc      func(ctx context.Context, token string) ([]model.Report, error)
	reviewFunc          func(ctx context.Context, token, reportID, status string) ([]model.Report, error)
	deleteFunc          func(ctx context.Context, token, reportID string) ([]model.Report, error)
	requestUploadFunc   func(ctx context.Context, token string, in service.UploadInput) (ports.UploadTarget, error)
	uploadFunc          func(ctx context.Context, token string, in service.UploadInput) ([]model.Report, error)
	dashboardStatsFunc  func(ctx context.Context, token string) (model.DashboardStats, error)
}

func (f *fakeReportService) MyReports(ctx context.Context, token string) ([]model.Report, error) {
	if f.myReportsFunc != nil {
		return f.myReportsFunc(ctx, token)
	}
	return nil, nil
}

func (f *fakeReportService) ApprovedReports(ctx context.Context, token string) ([]model.Report, error) {
	if f.approvedReportsFunc != nil {
		return f.approvedReportsFunc(ctx, token)
	}
	return nil, nil
}

func (f *fakeReportService) AllReports(ctx context.Context, token string) ([]model.Report, error) {
	if f.allReportsFunc != nil {
		return f.allReportsFunc(ctx, token)
	}
	return nil, nil
}

func (f *fakeReportService) Review(ctx context.Context, token, reportID, status string) ([]model.Report, error) {
	if f.reviewFunc != nil {
		return f.reviewFunc(ctx, token, reportID, status)
	}
	return nil, nil
}

func (f *fakeReportService) Delete(ctx context.Context, token, reportID string) ([]model.Report, error) {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, token, reportID)
	}
	return nil, nil
}

func (f *fakeReportService) RequestUpload(
	ctx context.Context,
	token string,
	in service.UploadInput,
) (ports.UploadTarget, error) {
	if f.requestUploadFunc != nil {
		return f.requestUploadFunc(ctx, token, in)
	}
	return ports.UploadTarget{UploadURL: "https://bucket/signed", Key: "k"}, nil
}

func (f *fakeReportService) Upload(
	ctx context.Context,
	token string,
	in service.UploadInput,
) ([]model.Report, error) {
	if f.uploadFunc != nil {
		return f.uploadFunc(ctx, token, in)
	}
	return nil, nil
}

func (f *fakeReportService) DashboardStats(ctx context.Context, token string) (model.DashboardStats, error) {
	if f.dashboardStatsFunc != nil {
		return f.dashboardStatsFunc(ctx, token)
	}
	return model.DashboardStats{}, nil
}

// fakeUserService is a test double for UserServiceInterface.
type fakeUserService struct {
	listFunc   func(ctx context.Context, token string) ([]model.User, error)
	createFunc func(ctx context.Context, token string, in service.CreateUserInput) ([]model.User, error)
	deleteFunc func(ctx context.Context, token, email string) ([]model.User, error)
}

func (f *fakeUserService) List(ctx context.Context, token string) ([]model.User, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, token)
	}
	return nil, nil
}

func (f *fakeUserService) Create(
	ctx context.Context,
	token string,
	in service.CreateUserInput,
) ([]model.User, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, token, in)
	}
	return nil, nil
}

func (f *fakeUserService) Delete(ctx context.Context, token, email string) ([]model.User, error) {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, token, email)
	}
	return nil, nil
}

// fakeHostedUI is a test double for ports.HostedUI.
type fakeHostedUI struct {
	login  string
	logout string
}

var _ ports.HostedUI = (*fakeHostedUI)(nil)

func (f *fakeHostedUI) LoginURL(state string) string { return f.login + "?state=" + state }
func (f *fakeHostedUI) LogoutURL() string            { return f.logout }

// fakeMinter is a test double for TokenMinter.
type fakeMinter struct {
	token string
	err   error
}

func (f *fakeMinter) MintToken() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

var errBoom = errors.New("boom")
