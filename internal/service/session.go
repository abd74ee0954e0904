package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	apperrors "github.com/medisys/reports-ui-api/internal/errors"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Decoder ports.TokenDecoder
	Tokens  ports.TokenStore
	Roles   ports.RoleMapper
	Logger  *slog.Logger
}

// SessionService owns the token-to-session lifecycle: it accepts a raw
// identity token at login, stores it keyed by an opaque session id, and
// re-derives the session from the stored token on every request. Tokens
// that no longer decode or have expired are cleared from storage, so a
// bad token can never linger behind an apparently healthy session.
type SessionService struct {
	decoder ports.TokenDecoder
	tokens  ports.TokenStore
	roles   ports.RoleMapper
	logger  *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		decoder: opts.Decoder,
		tokens:  opts.Tokens,
		roles:   opts.Roles,
		logger:  logger,
	}
}

// CompleteLoginResult contains the result of completing a login.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin accepts the raw identity token handed back by the identity
// provider, validates it, and establishes a stored session. The token is
// kept verbatim in the token store with a TTL matching its own expiry.
func (s *SessionService) CompleteLogin(ctx context.Context, rawToken string) (*CompleteLoginResult, error) {
	if rawToken == "" {
		return nil, apperrors.MalformedToken("identity token is required")
	}

	claims, err := s.decoder.Decode(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !claims.ExpiresAt.After(now) {
		return nil, apperrors.ExpiredSession()
	}

	sessionID := generateSessionID()
	session := s.buildSession(sessionID, claims)

	ttl := claims.ExpiresAt.Sub(now)
	if err := s.tokens.Set(ctx, sessionID, rawToken, ttl); err != nil {
		return nil, fmt.Errorf("store identity token: %w", err)
	}

	s.logger.InfoContext(ctx, "login completed",
		slog.String("subject_id", session.SubjectID),
		slog.String("role", string(session.Role)),
	)

	return &CompleteLoginResult{Session: session}, nil
}

// DeriveResult pairs a derived session with the raw token backing it.
// Handlers pass the token through to the reports API client.
type DeriveResult struct {
	Session  domainauth.Session
	RawToken string
}

// DeriveSession re-derives the session from the stored token. A nil result
// with nil error means "not logged in": no stored token, or a stored token
// that turned out malformed or expired (in which case it is cleared before
// returning). An error is returned only for storage failures.
func (s *SessionService) DeriveSession(ctx context.Context, sessionID string) (*DeriveResult, error) {
	if sessionID == "" {
		return nil, nil
	}

	rawToken, err := s.tokens.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity token: %w", err)
	}

	claims, err := s.decoder.Decode(ctx, rawToken)
	if err != nil {
		s.logger.WarnContext(ctx, "stored token no longer decodes, clearing session",
			slog.String("error", err.Error()),
		)
		s.clearQuietly(ctx, sessionID)
		return nil, nil
	}

	if !claims.ExpiresAt.After(time.Now()) {
		s.clearQuietly(ctx, sessionID)
		return nil, nil
	}

	return &DeriveResult{
		Session:  s.buildSession(sessionID, claims),
		RawToken: rawToken,
	}, nil
}

// Logout clears the stored token. A missing session id is a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.tokens.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear identity token: %w", err)
	}
	return nil
}

// buildSession maps decoded claims to a session, resolving the role and the
// display name fallback chain.
func (s *SessionService) buildSession(sessionID string, claims domainauth.Claims) domainauth.Session {
	return domainauth.Session{
		ID:          sessionID,
		SubjectID:   claims.SubjectID,
		DisplayName: displayName(claims),
		Email:       claims.Email,
		Role:        s.roles.Map(claims.Groups),
		ClinicID:    claims.ClinicID,
		ClinicName:  claims.ClinicName,
		ExpiresAt:   claims.ExpiresAt,
	}
}

func (s *SessionService) clearQuietly(ctx context.Context, sessionID string) {
	if err := s.tokens.Clear(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear stored token",
			slog.String("error", err.Error()),
		)
	}
}

// displayName picks the first populated identity field.
func displayName(claims domainauth.Claims) string {
	switch {
	case claims.Name != "":
		return claims.Name
	case claims.Username != "":
		return claims.Username
	case claims.Email != "":
		return claims.Email
	default:
		return "N/A"
	}
}

// generateSessionID creates a random URL-safe session id.
func generateSessionID() string {
	return uuid.New().String()
}
