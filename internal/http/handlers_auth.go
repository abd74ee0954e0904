package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/ports"
	"github.com/medisys/reports-ui-api/internal/service"
)

const (
	sessionCookieName = "session_id"
	stateCookieName   = "login_state"
)

// SessionServiceInterface defines the interface for session service operations.
type SessionServiceInterface interface {
	CompleteLogin(ctx context.Context, rawToken string) (*service.CompleteLoginResult, error)
	DeriveSession(ctx context.Context, sessionID string) (*service.DeriveResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// TokenMinter mints a local identity token. Wired only in mock auth mode,
// where no hosted identity provider is available.
type TokenMinter interface {
	MintToken() (string, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          SessionServiceInterface
	Hosted       ports.HostedUI
	Minter       TokenMinter
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login initiation endpoint.
// GET /auth/login.
// In mock auth mode a local token is minted and the session is established
// immediately; otherwise the browser is redirected to the hosted login page,
// which hands the identity token back via POST /auth/callback.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if h.Minter != nil {
		h.mockLogin(w, r)
		return
	}

	if h.Hosted == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_unavailable",
			Err:     errors.New("no hosted login page configured"),
		})
		return
	}

	state := uuid.New().String()
	h.setStateCookie(w, r, state)
	http.Redirect(w, r, h.Hosted.LoginURL(state), http.StatusFound)
}

// mockLogin mints a local token and completes the login in one step.
func (h *AuthHandlers) mockLogin(w http.ResponseWriter, r *http.Request) {
	rawToken, err := h.Minter.MintToken()
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), rawToken)
	if err != nil {
		RenderError(w, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	http.Redirect(w, r, "/", http.StatusFound)
}

// callbackRequest is the body posted by the front-end after the hosted login
// redirect delivers the identity token.
type callbackRequest struct {
	IDToken string `json:"id_token"`
	State   string `json:"state"`
}

// Callback consumes the identity token delivered by the hosted login page.
// POST /auth/callback.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_token",
			Err:     errors.New("id_token is required"),
		})
		return
	}

	// Verify state when the login flow set one. The hosted page echoes the
	// state back alongside the token.
	if stateCookie, err := r.Cookie(stateCookieName); err == nil && stateCookie.Value != "" {
		if req.State != stateCookie.Value {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_state",
				Err:     errors.New("state parameter does not match login request"),
			})
			return
		}
	}

	result, err := h.Svc.CompleteLogin(r.Context(), req.IDToken)
	if err != nil {
		RenderError(w, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	h.clearCookie(w, r, stateCookieName)

	WriteJSON(w, http.StatusOK, statusPayload(&result.Session))
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, sessionCookieName)

	// When a hosted logout page is configured the front-end navigates there
	// to end the identity-provider session as well.
	redirectTo := "/"
	if h.Hosted != nil {
		if u := h.Hosted.LogoutURL(); u != "" {
			redirectTo = u
		}
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": redirectTo,
	})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, statusPayload(nil))
		return
	}

	result, err := h.Svc.DeriveSession(r.Context(), sessionCookie.Value)
	if err != nil {
		RenderError(w, err)
		return
	}
	if result == nil {
		// Stored token is gone, malformed, or expired; drop the cookie too.
		h.clearCookie(w, r, sessionCookieName)
		WriteJSON(w, http.StatusOK, statusPayload(nil))
		return
	}

	WriteJSON(w, http.StatusOK, statusPayload(&result.Session))
}

// statusPayload builds the auth status body shared by Status and Callback.
func statusPayload(s *domainauth.Session) map[string]any {
	if s == nil {
		return map[string]any{"authenticated": false}
	}
	return map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":           s.SubjectID,
			"display_name": s.DisplayName,
			"email":        s.Email,
			"role":         s.Role,
			"clinic_id":    s.ClinicID,
			"clinic_name":  s.ClinicName,
		},
		"capabilities": domainauth.AllowedCapabilities(s.Role),
		"expires_at":   s.ExpiresAt,
	}
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setStateCookie stores the login state for later verification in Callback.
func (h *AuthHandlers) setStateCookie(w http.ResponseWriter, r *http.Request, state string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}
