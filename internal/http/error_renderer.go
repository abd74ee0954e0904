package httpx

import (
	"net/http"

	apperrors "github.com/medisys/reports-ui-api/internal/errors"
)

// RenderError maps a service error to an HTTP response. Upstream reports API
// failures pass their status and body text through verbatim so the caller
// sees exactly what the remote said; everything else maps by error code.
func RenderError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	switch code {
	case apperrors.ErrCodeNotAuthenticated,
		apperrors.ErrCodeMalformedToken,
		apperrors.ErrCodeExpiredSession:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(code), Err: err})
	case apperrors.ErrCodeValidation:
		writeValidationError(w, err)
	case apperrors.ErrCodeUpstream, apperrors.ErrCodeUploadTransfer:
		WriteError(w, ErrorParams{Code: passthroughStatus(err), ErrCode: string(code), Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
	}
}

// writeValidationError includes the offending field when the error names one.
func writeValidationError(w http.ResponseWriter, err error) {
	body := map[string]string{
		"error":   string(apperrors.ErrCodeValidation),
		"message": err.Error(),
	}
	if field := apperrors.GetField(err); field != "" {
		body["field"] = field
	}
	WriteJSON(w, http.StatusBadRequest, body)
}

// passthroughStatus returns the upstream status carried by err, falling back
// to 502 when the error holds no usable status (e.g. a network failure).
func passthroughStatus(err error) int {
	status := apperrors.GetStatus(err)
	if status < 400 || status > 599 {
		return http.StatusBadGateway
	}
	return status
}
