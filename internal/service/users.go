package service

import (
	"context"
	"log/slog"
	"strings"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/domain/model"
	apperrors "github.com/medisys/reports-ui-api/internal/errors"
	"github.com/medisys/reports-ui-api/internal/normalize"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	API        ports.ReportsAPI
	Normalizer *normalize.Normalizer
	Logger     *slog.Logger
}

// UserService orchestrates user account administration against the remote
// reports API. Mutations return the refreshed account list.
type UserService struct {
	api        ports.ReportsAPI
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &UserService{
		api:        opts.API,
		normalizer: normalizer,
		logger:     logger,
	}
}

// List lists user accounts.
func (s *UserService) List(ctx context.Context, token string) ([]model.User, error) {
	recs, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Users(recs), nil
}

// CreateUserInput groups parameters for creating a user account.
type CreateUserInput struct {
	Email     string
	RoleAlias string
	ClinicID  string
}

// Create creates a user account and returns the refreshed list. The role
// alias must resolve to a known role; clinic submitters also need a
// well-formed clinic id.
func (s *UserService) Create(ctx context.Context, token string, in CreateUserInput) ([]model.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.ValidationField("email", "email is malformed")
	}

	alias := strings.TrimSpace(in.RoleAlias)
	role, ok := domainauth.RoleForAlias(alias)
	if !ok {
		return nil, apperrors.ValidationField("role", "unknown role")
	}

	clinicID := strings.TrimSpace(in.ClinicID)
	if role == domainauth.RoleClinicSubmitter {
		if !clinicIDPattern.MatchString(clinicID) {
			return nil, apperrors.ValidationField("clinic_id", "clinic id is missing or malformed")
		}
	} else {
		clinicID = ""
	}

	req := ports.CreateUserInput{
		Email:     email,
		RoleAlias: alias,
		ClinicID:  clinicID,
	}
	if err := s.api.CreateUser(ctx, token, req); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("email", email),
		slog.String("role", string(role)),
	)

	return s.List(ctx, token)
}

// Delete removes a user account by email and returns the refreshed list.
func (s *UserService) Delete(ctx context.Context, token, email string) ([]model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}

	if err := s.api.DeleteUser(ctx, token, email); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("email", email))

	return s.List(ctx, token)
}
