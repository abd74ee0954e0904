package service

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/domain/model"
	apperrors "github.com/medisys/reports-ui-api/internal/errors"
	"github.com/medisys/reports-ui-api/internal/normalize"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// uploadContentType is the only media type the reports pipeline accepts.
const uploadContentType = "text/csv"

// clinicIDPattern is the shape a clinic submitter's clinic id must have
// before an upload is attempted.
var clinicIDPattern = regexp.MustCompile(`^CLINIC_[0-9]+$`)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	API        ports.ReportsAPI
	Uploader   ports.FileUploader
	Normalizer *normalize.Normalizer
	Logger     *slog.Logger
}

// ReportService orchestrates report listing, review, and upload against the
// remote reports API. Mutating operations return the refreshed list so a
// caller never renders from a stale snapshot: the re-fetch happens after the
// mutation has resolved, inside the same call.
type ReportService struct {
	api        ports.ReportsAPI
	uploader   ports.FileUploader
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) *ReportService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &ReportService{
		api:        opts.API,
		uploader:   opts.Uploader,
		normalizer: normalizer,
		logger:     logger,
	}
}

// MyReports lists the caller's own submitted reports.
func (s *ReportService) MyReports(ctx context.Context, token string) ([]model.Report, error) {
	recs, err := s.api.MyReports(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Reports(recs), nil
}

// ApprovedReports lists approved reports, newest submission first.
func (s *ReportService) ApprovedReports(ctx context.Context, token string) ([]model.Report, error) {
	recs, err := s.api.ApprovedReports(ctx, token)
	if err != nil {
		return nil, err
	}
	reports := s.normalizer.Reports(recs)
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].SubmittedAt > reports[j].SubmittedAt
	})
	return reports, nil
}

// AllReports lists every report across clinics.
func (s *ReportService) AllReports(ctx context.Context, token string) ([]model.Report, error) {
	recs, err := s.api.AllReports(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Reports(recs), nil
}

// Review sets a report's review status and returns the refreshed full list.
func (s *ReportService) Review(ctx context.Context, token, reportID, status string) ([]model.Report, error) {
	if reportID == "" {
		return nil, apperrors.ValidationField("report_id", "report id is required")
	}
	if !model.ValidReviewStatus(status) {
		return nil, apperrors.ValidationField("status", "status must be Pending, Approved, or Rejected")
	}

	if err := s.api.ReviewReport(ctx, token, reportID, status); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "report reviewed",
		slog.String("report_id", reportID),
		slog.String("status", status),
	)

	return s.AllReports(ctx, token)
}

// Delete removes a report and returns the refreshed full list.
func (s *ReportService) Delete(ctx context.Context, token, reportID string) ([]model.Report, error) {
	if reportID == "" {
		return nil, apperrors.ValidationField("report_id", "report id is required")
	}

	if err := s.api.DeleteReport(ctx, token, reportID); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "report deleted", slog.String("report_id", reportID))

	return s.AllReports(ctx, token)
}

// UploadInput groups parameters for uploading a report file.
type UploadInput struct {
	FileName string
	Body     []byte
	Session  domainauth.Session
}

// RequestUpload validates the upload inputs and asks the reports API for a
// signed destination. All local validation happens before any network call.
func (s *ReportService) RequestUpload(ctx context.Context, token string, in UploadInput) (ports.UploadTarget, error) {
	name := strings.TrimSpace(in.FileName)
	if name == "" {
		return ports.UploadTarget{}, apperrors.ValidationField("filename", "file name is required")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return ports.UploadTarget{}, apperrors.ValidationField("filename", "only .csv files are accepted")
	}
	if in.Session.IsClinicSubmitter() && !clinicIDPattern.MatchString(in.Session.ClinicID) {
		return ports.UploadTarget{}, apperrors.ValidationField("clinic_id", "clinic id is missing or malformed")
	}

	req := ports.UploadRequest{
		FileName:    name,
		ContentType: uploadContentType,
	}
	if in.Session.IsClinicSubmitter() {
		req.ClinicID = in.Session.ClinicID
	}

	target, err := s.api.RequestUploadURL(ctx, token, req)
	if err != nil {
		return ports.UploadTarget{}, err
	}
	if target.UploadURL == "" {
		return ports.UploadTarget{}, apperrors.Internal("reports API returned an empty upload URL")
	}
	return target, nil
}

// Upload runs the two-phase report upload: request a signed destination
// from the reports API, then transfer the file bytes directly to it. The
// caller's own list is refreshed only when the transfer succeeded.
func (s *ReportService) Upload(ctx context.Context, token string, in UploadInput) ([]model.Report, error) {
	if len(in.Body) == 0 {
		return nil, apperrors.ValidationField("file", "file is empty")
	}

	target, err := s.RequestUpload(ctx, token, in)
	if err != nil {
		return nil, err
	}

	if err := s.uploader.Upload(ctx, target.UploadURL, uploadContentType, in.Body); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "report uploaded",
		slog.String("filename", strings.TrimSpace(in.FileName)),
		slog.String("key", target.Key),
		slog.Int("size_bytes", len(in.Body)),
	)

	return s.MyReports(ctx, token)
}

// DashboardStats fetches the dashboard aggregates.
func (s *ReportService) DashboardStats(ctx context.Context, token string) (model.DashboardStats, error) {
	rec, err := s.api.DashboardStats(ctx, token)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return s.normalizer.Dashboard(rec), nil
}
