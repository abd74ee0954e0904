package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	apperrors "github.com/medisys/reports-ui-api/internal/errors"
	"github.com/medisys/reports-ui-api/internal/service"
)

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_RedirectsToHostedPage(t *testing.T) {
	h := &AuthHandlers{
		Svc:    &fakeSessionService{},
		Hosted: &fakeHostedUI{login: "https://idp.example.com/login"},
	}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusFound, rec.Code)

	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://idp.example.com/login?state="))

	// The state in the redirect matches the state cookie.
	stateCookie := cookieByName(t, rec, stateCookieName)
	require.NotNil(t, stateCookie)
	assert.Equal(t, location, "https://idp.example.com/login?state="+stateCookie.Value)
	assert.NotEmpty(t, stateCookie.Value)
}

func TestLogin_NoHostedPageConfigured(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "login_unavailable", body["error"])
}

func TestLogin_MockModeEstablishesSessionDirectly(t *testing.T) {
	var completedWith string
	h := &AuthHandlers{
		Svc: &fakeSessionService{
			completeLoginFunc: func(_ context.Context, rawToken string) (*service.CompleteLoginResult, error) {
				completedWith = rawToken
				return &service.CompleteLoginResult{Session: testSession(domainauth.RoleAdministrator)}, nil
			},
		},
		Minter: &fakeMinter{token: "minted-token"},
	}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "minted-token", completedWith)

	sessionCookie := cookieByName(t, rec, sessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "sess-1", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLogin_MockModeMintFailure(t *testing.T) {
	h := &AuthHandlers{
		Svc:    &fakeSessionService{},
		Minter: &fakeMinter{err: errBoom},
	}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCallback_Success(t *testing.T) {
	session := testSession(domainauth.RoleClinicSubmitter)
	h := &AuthHandlers{
		Svc: &fakeSessionService{
			completeLoginFunc: func(_ context.Context, _ string) (*service.CompleteLoginResult, error) {
				return &service.CompleteLoginResult{Session: session}, nil
			},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/callback",
		strings.NewReader(`{"id_token":"tok-abc","state":"s1"}`))
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "s1"})

	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "Ada Clark", user["display_name"])
	assert.Equal(t, "clinic_submitter", user["role"])
	assert.Equal(t, "CLINIC_7", user["clinic_id"])

	caps, ok := body["capabilities"].([]any)
	require.True(t, ok)
	assert.Contains(t, caps, "upload")
	assert.Contains(t, caps, "own_reports")

	sessionCookie := cookieByName(t, rec, sessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "sess-1", sessionCookie.Value)

	// The state cookie is cleared once consumed.
	stateCookie := cookieByName(t, rec, stateCookieName)
	require.NotNil(t, stateCookie)
	assert.Equal(t, "", stateCookie.Value)
	assert.Negative(t, stateCookie.MaxAge)
}

func TestCallback_MissingToken(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/callback", strings.NewReader(`{"state":"s1"}`))
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing_token", body["error"])
}

func TestCallback_InvalidJSON(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/callback", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallback_StateMismatch(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/callback",
		strings.NewReader(`{"id_token":"tok-abc","state":"attacker"}`))
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "s1"})

	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error"])
}

func TestCallback_NoStateCookieSkipsCheck(t *testing.T) {
	// A direct token post (no prior /auth/login redirect) carries no state.
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/callback",
		strings.NewReader(`{"id_token":"tok-abc"}`))
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCallback_ExpiredToken(t *testing.T) {
	h := &AuthHandlers{
		Svc: &fakeSessionService{
			completeLoginFunc: func(_ context.Context, _ string) (*service.CompleteLoginResult, error) {
				return nil, apperrors.ExpiredSession()
			},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/callback",
		strings.NewReader(`{"id_token":"tok-old"}`))
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "expired_session", body["error"])
}

func TestLogout_ClearsSessionAndPointsAtHostedLogout(t *testing.T) {
	sessions := &fakeSessionService{}
	h := &AuthHandlers{
		Svc:    sessions,
		Hosted: &fakeHostedUI{logout: "https://idp.example.com/logout"},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"sess-1"}, sessions.logoutCalls)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "https://idp.example.com/logout", body["redirect_to"])

	sessionCookie := cookieByName(t, rec, sessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "", sessionCookie.Value)
	assert.Negative(t, sessionCookie.MaxAge)
}

func TestLogout_NoHostedPageFallsBackToRoot(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/", body["redirect_to"])
}

func TestLogout_ServiceFailureStillSucceeds(t *testing.T) {
	h := &AuthHandlers{
		Svc: &fakeSessionService{
			logoutFunc: func(_ context.Context, _ string) error { return errBoom },
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	// The cookie is cleared regardless; the browser ends up logged out.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus_NoCookie(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}}

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])
	_, hasUser := body["user"]
	assert.False(t, hasUser)
}

func TestStatus_ActiveSession(t *testing.T) {
	h := &AuthHandlers{Svc: sessionServiceFor(testSession(domainauth.RoleStaffReviewer))}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])

	caps, ok := body["capabilities"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"dashboard", "approved_reports"}, caps)
}

func TestStatus_StaleSessionClearsCookie(t *testing.T) {
	h := &AuthHandlers{
		Svc: &fakeSessionService{
			deriveSessionFunc: func(_ context.Context, _ string) (*service.DeriveResult, error) {
				return nil, nil
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-stale"})

	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])

	sessionCookie := cookieByName(t, rec, sessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Negative(t, sessionCookie.MaxAge)
}

func TestStatus_StorageFailure(t *testing.T) {
	h := &AuthHandlers{
		Svc: &fakeSessionService{
			deriveSessionFunc: func(_ context.Context, _ string) (*service.DeriveResult, error) {
				return nil, errBoom
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSessionCookie_SecureBehindTLSProxy(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeSessionService{}, Minter: &fakeMinter{token: "t"}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := httptest.NewRecorder()
	h.Login(rec, req)

	sessionCookie := cookieByName(t, rec, sessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.Secure)
}
