package reportsapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/medisys/reports-ui-api/internal/errors"
)

// Uploader sends file bodies directly to signed upload URLs. The
// destination is typically object storage rather than the reports API, so
// transfer failures are classified separately from API failures.
type Uploader struct {
	client *http.Client
}

// NewUploader builds a direct file uploader.
func NewUploader(timeout time.Duration) *Uploader {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Uploader{client: &http.Client{Timeout: timeout}}
}

// Upload PUTs the body to the signed URL with the given content type.
func (u *Uploader) Upload(ctx context.Context, uploadURL, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload request")
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := u.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUploadTransfer, "upload transfer")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.UploadTransfer(resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}
