package config

import "time"

// APIConfig contains reports API client configuration.
type APIConfig struct {
	// BaseURL is the root of the remote reports API.
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds each reports API call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// UploadTimeout bounds the direct file transfer to a signed URL.
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"60s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
	if a.UploadTimeout <= 0 {
		a.UploadTimeout = 60 * time.Second
	}
}
