package devauth

// Package devauth provides a config-driven identity provider for local
// development. It mints unsigned compact tokens in the same claim shape the
// hosted provider issues, so the whole session pipeline (decode, expiry,
// role mapping, storage) runs unchanged.

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config controls the dev identity. All fields are required except Groups
// and ClinicID, which may be empty.
type Config struct {
	SubjectID       string
	Email           string
	Name            string
	Groups          []string
	ClinicID        string
	SessionDuration time.Duration // default 8h when zero
}

// Provider mints development tokens from a fixed configured identity.
type Provider struct {
	cfg Config
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.SubjectID == "" {
		return nil, errors.New("dev auth: SubjectID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = 8 * time.Hour
	}
	return &Provider{cfg: cfg}, nil
}

// MintToken returns a fresh unsigned token for the configured identity.
func (p *Provider) MintToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":              p.cfg.SubjectID,
		"email":            p.cfg.Email,
		"name":             p.cfg.Name,
		"cognito:username": p.cfg.SubjectID,
		"cognito:groups":   p.cfg.Groups,
		"iat":              now.Unix(),
		"exp":              now.Add(p.cfg.SessionDuration).Unix(),
	}
	if p.cfg.ClinicID != "" {
		claims["custom:clinic_id"] = p.cfg.ClinicID
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		return "", err
	}
	return signed, nil
}
