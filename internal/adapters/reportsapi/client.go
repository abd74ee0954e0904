package reportsapi

// Package reportsapi is the HTTP client for the remote diagnostic-reports
// REST API. Every call carries the caller's bearer token; a missing token
// fails locally before any network I/O. Non-2xx responses surface the
// upstream status and body text verbatim.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/medisys/reports-ui-api/internal/errors"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// Config captures the client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client // Optional; overrides Timeout when set
}

// Client implements ports.ReportsAPI.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a reports API client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("reports API base URL is required")
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, client: hc}, nil
}

// callParams groups the inputs of one API call.
type callParams struct {
	method string
	path   string
	token  string
	body   any
}

// RequestUploadURL asks the API for a signed upload destination.
func (c *Client) RequestUploadURL(
	ctx context.Context,
	token string,
	in ports.UploadRequest,
) (ports.UploadTarget, error) {
	var out ports.UploadTarget
	err := c.call(ctx, callParams{method: http.MethodPost, path: "/upload-reports", token: token, body: in}, &out)
	return out, err
}

// MyReports lists the caller's own submitted reports.
func (c *Client) MyReports(ctx context.Context, token string) ([]ports.RawRecord, error) {
	return c.list(ctx, token, "/my-reports")
}

// ApprovedReports lists approved reports.
func (c *Client) ApprovedReports(ctx context.Context, token string) ([]ports.RawRecord, error) {
	return c.list(ctx, token, "/approved-reports")
}

// AllReports lists every report.
func (c *Client) AllReports(ctx context.Context, token string) ([]ports.RawRecord, error) {
	return c.list(ctx, token, "/all-reports")
}

// ReviewReport sets the review status of a report.
func (c *Client) ReviewReport(ctx context.Context, token, reportID, status string) error {
	p := callParams{
		method: http.MethodPut,
		path:   "/review-report/" + url.PathEscape(reportID),
		token:  token,
		body:   map[string]string{"status": status},
	}
	return c.call(ctx, p, nil)
}

// DeleteReport removes a report.
func (c *Client) DeleteReport(ctx context.Context, token, reportID string) error {
	p := callParams{
		method: http.MethodDelete,
		path:   "/review-report/" + url.PathEscape(reportID),
		token:  token,
	}
	return c.call(ctx, p, nil)
}

// DashboardStats fetches the dashboard aggregate buckets.
func (c *Client) DashboardStats(ctx context.Context, token string) (ports.RawRecord, error) {
	var out ports.RawRecord
	err := c.call(ctx, callParams{method: http.MethodGet, path: "/dashboard-stats", token: token}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers lists user accounts.
func (c *Client) ListUsers(ctx context.Context, token string) ([]ports.RawRecord, error) {
	return c.list(ctx, token, "/all-users")
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, token string, in ports.CreateUserInput) error {
	return c.call(ctx, callParams{method: http.MethodPost, path: "/user", token: token, body: in}, nil)
}

// DeleteUser removes a user account by email.
func (c *Client) DeleteUser(ctx context.Context, token, email string) error {
	p := callParams{
		method: http.MethodDelete,
		path:   "/user",
		token:  token,
		body:   map[string]string{"email": email},
	}
	return c.call(ctx, p, nil)
}

// list fetches a JSON array endpoint. Some endpoints wrap the array in a
// {"reports": [...]} or {"users": [...]} envelope; both shapes are accepted.
func (c *Client) list(ctx context.Context, token, path string) ([]ports.RawRecord, error) {
	var raw json.RawMessage
	if err := c.call(ctx, callParams{method: http.MethodGet, path: path, token: token}, &raw); err != nil {
		return nil, err
	}
	return decodeRecordList(raw)
}

// call performs one authorized request and decodes the response into out
// when out is non-nil.
func (c *Client) call(ctx context.Context, p callParams, out any) error {
	if p.token == "" {
		return apperrors.NotAuthenticated()
	}

	var body io.Reader
	if p.body != nil {
		encoded, err := json.Marshal(p.body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, c.baseURL+p.path, body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	if p.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, fmt.Sprintf("%s %s", p.method, p.path))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Upstream(resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode response body")
	}
	return nil
}

// decodeRecordList accepts either a bare array or a single-key envelope
// around one and returns the records.
func decodeRecordList(raw json.RawMessage) ([]ports.RawRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var records []ports.RawRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode record list")
	}
	for _, v := range envelope {
		if err := json.Unmarshal(v, &records); err == nil {
			return records, nil
		}
	}
	// An envelope with no array member renders as an empty list.
	return nil, nil
}
