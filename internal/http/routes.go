package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions SessionServiceInterface
	Reports  ReportServiceInterface
	Users    UserServiceInterface
	Hosted   ports.HostedUI
	// Minter is set only in mock auth mode.
	Minter       TokenMinter
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Sessions,
		Hosted:       services.Hosted,
		Minter:       services.Minter,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	reportHandlers := &ReportHandlers{Svc: services.Reports}
	userHandlers := &UserHandlers{Svc: services.Users}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerAuthRoutes(mux, authHandlers)
	registerReportRoutes(mux, reportHandlers, services.Sessions)
	registerUserRoutes(mux, userHandlers, services.Sessions)

	return Recover(logger)(Logging(logger)(mux))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers, sessions SessionServiceInterface) {
	dashboard := RequireCapability(sessions, domainauth.CapDashboard)
	own := RequireCapability(sessions, domainauth.CapOwnReports)
	approved := RequireCapability(sessions, domainauth.CapApprovedReports)
	all := RequireCapability(sessions, domainauth.CapAllReports)
	upload := RequireCapability(sessions, domainauth.CapUpload)

	mux.Handle("GET /api/dashboard-stats", dashboard(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /api/my-reports", own(http.HandlerFunc(h.MyReports)))
	mux.Handle("GET /api/approved-reports", approved(http.HandlerFunc(h.ApprovedReports)))
	mux.Handle("GET /api/all-reports", all(http.HandlerFunc(h.AllReports)))
	mux.Handle("PUT /api/review-report/{id}", all(http.HandlerFunc(h.Review)))
	mux.Handle("DELETE /api/review-report/{id}", all(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/upload-reports", upload(http.HandlerFunc(h.RequestUpload)))
	mux.Handle("PUT /api/upload-reports/file", upload(http.HandlerFunc(h.UploadFile)))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, sessions SessionServiceInterface) {
	admin := RequireCapability(sessions, domainauth.CapUserManagement)

	mux.Handle("GET /api/all-users", admin(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/user", admin(http.HandlerFunc(h.Create)))
	mux.Handle("DELETE /api/user", admin(http.HandlerFunc(h.Delete)))
}
