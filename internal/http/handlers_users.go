package httpx

import (
	"context"
	"net/http"

	"github.com/medisys/reports-ui-api/internal/domain/model"
	"github.com/medisys/reports-ui-api/internal/service"
)

// UserServiceInterface defines the interface for user service operations.
type UserServiceInterface interface {
	List(ctx context.Context, token string) ([]model.User, error)
	Create(ctx context.Context, token string, in service.CreateUserInput) ([]model.User, error)
	Delete(ctx context.Context, token, email string) ([]model.User, error)
}

// UserHandlers provides HTTP handlers for user administration.
type UserHandlers struct {
	Svc UserServiceInterface
}

// List handles GET /api/all-users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	users, err := h.Svc.List(r.Context(), principal.RawToken)
	if err != nil {
		RenderError(w, err)
		return
	}
	writeUsers(w, users)
}

// createUserRequest is the body for creating a user account.
type createUserRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	ClinicID string `json:"clinicId"`
}

// Create handles POST /api/user.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	var req createUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	users, err := h.Svc.Create(r.Context(), principal.RawToken, service.CreateUserInput{
		Email:     req.Email,
		RoleAlias: req.Role,
		ClinicID:  req.ClinicID,
	})
	if err != nil {
		RenderError(w, err)
		return
	}
	writeUsers(w, users)
}

// deleteUserRequest is the body for deleting a user account.
type deleteUserRequest struct {
	Email string `json:"email"`
}

// Delete handles DELETE /api/user.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeMissingPrincipal(w)
		return
	}

	var req deleteUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	users, err := h.Svc.Delete(r.Context(), principal.RawToken, req.Email)
	if err != nil {
		RenderError(w, err)
		return
	}
	writeUsers(w, users)
}

func writeUsers(w http.ResponseWriter, users []model.User) {
	if users == nil {
		users = []model.User{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}
