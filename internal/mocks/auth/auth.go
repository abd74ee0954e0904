package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenDecoder = (*StaticDecoder)(nil)
	_ ports.TokenStore   = (*MemoryTokenStore)(nil)
	_ ports.HostedUI     = (*StubHostedUI)(nil)
)

// StaticDecoder maps raw token strings to canned claims. Tokens not present
// in the table decode as malformed.
type StaticDecoder struct {
	// Claims maps raw token -> decoded claims.
	Claims map[string]domainauth.Claims
	// Err, when set, is returned for every Decode call.
	Err error
}

func (d *StaticDecoder) Decode(_ context.Context, rawToken string) (domainauth.Claims, error) {
	if d.Err != nil {
		return domainauth.Claims{}, d.Err
	}
	claims, ok := d.Claims[rawToken]
	if !ok {
		return domainauth.Claims{}, errors.New("token not recognized")
	}
	return claims, nil
}

// MemoryTokenStore is an in-memory token store for unit tests. It honors
// the TTL handed to Set the same way the Redis store does.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry

	// SetErr/GetErr/ClearErr force failures when non-nil.
	SetErr   error
	GetErr   error
	ClearErr error
}

type memoryEntry struct {
	raw     string
	expires time.Time
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryEntry)}
}

func (m *MemoryTokenStore) Get(_ context.Context, sessionID string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.tokens[sessionID]
	if !ok || time.Now().After(entry.expires) {
		delete(m.tokens, sessionID)
		return "", ports.ErrTokenNotFound
	}
	return entry.raw, nil
}

func (m *MemoryTokenStore) Set(_ context.Context, sessionID, rawToken string, ttl time.Duration) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if rawToken == "" {
		return errors.New("token cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("token is expired")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[sessionID] = memoryEntry{raw: rawToken, expires: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryTokenStore) Clear(_ context.Context, sessionID string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sessionID)
	return nil
}

// Len reports the number of stored tokens.
func (m *MemoryTokenStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

// Has reports whether a token is stored for the session id.
func (m *MemoryTokenStore) Has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[sessionID]
	return ok
}

// StubHostedUI returns fixed hosted page URLs.
type StubHostedUI struct {
	Login  string
	Logout string
}

func (s *StubHostedUI) LoginURL(state string) string {
	if s.Login == "" {
		return "https://auth.example.com/login?state=" + state
	}
	return s.Login + "?state=" + state
}

func (s *StubHostedUI) LogoutURL() string { return s.Logout }
