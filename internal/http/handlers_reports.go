package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/medisys/reports-ui-api/internal/domain/model"
	"github.com/medisys/reports-ui-api/internal/ports"
	"github.com/medisys/reports-ui-api/internal/service"
)

// maxUploadBytes bounds report uploads read into memory.
const maxUploadBytes = 20 << 20 // 20 MiB

// ReportServiceInterface defines the interface for report service operations.
type ReportServiceInterface interface {
	MyReports(ctx context.Context, token string) ([]model.Report, error)
	ApprovedReports(ctx context.Context, token string) ([]model.Report, error)
	AllReports(ctx context.Context, token string) ([]model.Report, error)
	Review(ctx context.Context, token, reportID, status string) ([]model.Report, error)
	Delete(ctx context.Context, token, reportID string) ([]model.Report, error)
	RequestUpload(ctx context.Context, token string, in service.UploadInput) (ports.UploadTarget, error)
	Upload(ctx context.Context, token string, in service.UploadInput) ([]model.Report, error)
	DashboardStats(ctx context.Context, token string) (model.DashboardStats, error)
}

// ReportHandlers provides HTTP handlers for report operations.
type ReportHandlers struct {
	Svc ReportServiceInterface
}

// Dashboard handles GET /api/dashboard-stats.
func (h *ReportHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	stats, err := h.Svc.DashboardStats(r.Context(), principal.RawToken)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// MyReports handles GET /api/my-reports.
func (h *ReportHandlers) MyReports(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Svc.MyReports)
}

// ApprovedReports handles GET /api/approved-reports.
func (h *ReportHandlers) ApprovedReports(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Svc.ApprovedReports)
}

// AllReports handles GET /api/all-reports.
func (h *ReportHandlers) AllReports(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Svc.AllReports)
}

func (h *ReportHandlers) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, token string) ([]model.Report, error),
) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	reports, err := fetch(r.Context(), principal.RawToken)
	if err != nil {
		RenderError(w, err)
		return
	}
	writeReports(w, reports)
}

// reviewRequest is the body for a review decision.
type reviewRequest struct {
	Status string `json:"status"`
}

// Review handles PUT /api/review-report/{id}.
func (h *ReportHandlers) Review(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	var req reviewRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	reports, err := h.Svc.Review(r.Context(), principal.RawToken, r.PathValue("id"), req.Status)
	if err != nil {
		RenderError(w, err)
		return
	}
	writeReports(w, reports)
}

// Delete handles DELETE /api/review-report/{id}.
func (h *ReportHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	reports, err := h.Svc.Delete(r.Context(), principal.RawToken, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	writeReports(w, reports)
}

// uploadRequest is the body for requesting a signed upload destination.
type uploadRequest struct {
	FileName string `json:"filename"`
}

// RequestUpload handles POST /api/upload-reports. It validates the file name
// and returns the signed destination for a client-side direct upload.
func (h *ReportHandlers) RequestUpload(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	var req uploadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	target, err := h.Svc.RequestUpload(r.Context(), principal.RawToken, service.UploadInput{
		FileName: req.FileName,
		Session:  principal.Session,
	})
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, target)
}

// UploadFile handles PUT /api/upload-reports/file. The file arrives as a
// multipart form with a "file" part; the server runs the full two-phase
// upload and responds with the caller's refreshed report list.
func (h *ReportHandlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_upload",
			Err:     errors.New("multipart form must carry a file part"),
		})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	body, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_upload",
			Err:     err,
		})
		return
	}

	reports, err := h.Svc.Upload(r.Context(), principal.RawToken, service.UploadInput{
		FileName: header.Filename,
		Body:     body,
		Session:  principal.Session,
	})
	if err != nil {
		RenderError(w, err)
		return
	}
	writeReports(w, reports)
}

func writeReports(w http.ResponseWriter, reports []model.Report) {
	if reports == nil {
		reports = []model.Report{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// writeMissingPrincipal covers handlers reached without the session
// middleware; the router always installs it, so this is a wiring bug.
func writeMissingPrincipal(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}
