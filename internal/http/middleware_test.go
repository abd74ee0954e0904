package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/service"
)

func requestWithSessionCookie(sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	}
	return req
}

func TestRequireSession_Success(t *testing.T) {
	sessions := sessionServiceFor(testSession(domainauth.RoleAdministrator))

	var gotPrincipal *Principal
	handler := RequireSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, _ = GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie("sess-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPrincipal)
	assert.Equal(t, "u1", gotPrincipal.Session.SubjectID)
	assert.Equal(t, "raw-token", gotPrincipal.RawToken)
}

func TestRequireSession_NoCookie(t *testing.T) {
	sessions := sessionServiceFor(testSession(domainauth.RoleAdministrator))

	handler := RequireSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
}

func TestRequireSession_DerivedNil(t *testing.T) {
	// A stored token that turned out malformed or expired derives to nil.
	sessions := &fakeSessionService{
		deriveSessionFunc: func(_ context.Context, _ string) (*service.DeriveResult, error) {
			return nil, nil
		},
	}

	handler := RequireSession(sessions)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie("sess-1"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_DeriveError(t *testing.T) {
	sessions := &fakeSessionService{
		deriveSessionFunc: func(_ context.Context, _ string) (*service.DeriveResult, error) {
			return nil, errBoom
		},
	}

	handler := RequireSession(sessions)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie("sess-1"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCapability_Allowed(t *testing.T) {
	sessions := sessionServiceFor(testSession(domainauth.RoleAdministrator))

	handler := RequireCapability(sessions, domainauth.CapUserManagement)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie("sess-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireCapability_Forbidden(t *testing.T) {
	sessions := sessionServiceFor(testSession(domainauth.RoleStaffReviewer))

	handler := RequireCapability(sessions, domainauth.CapUserManagement)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie("sess-1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "insufficient_permissions", body["error"])
}

func TestRequireCapability_Unauthenticated(t *testing.T) {
	sessions := sessionServiceFor(testSession(domainauth.RoleAdministrator))

	handler := RequireCapability(sessions, domainauth.CapDashboard)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSessionCookie(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPrincipalContextRoundTrip(t *testing.T) {
	p := &Principal{Session: testSession(domainauth.RoleClinicSubmitter), RawToken: "raw"}

	ctx := SetPrincipalInContext(context.Background(), p)
	got, ok := GetPrincipalFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestPrincipalContext_Missing(t *testing.T) {
	_, ok := GetPrincipalFromContext(context.Background())
	assert.False(t, ok)
}

func TestPrincipalContext_NilPrincipalUnchanged(t *testing.T) {
	ctx := SetPrincipalInContext(context.Background(), nil)
	_, ok := GetPrincipalFromContext(ctx)
	assert.False(t, ok)
}
