package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	plain := Validation("email is required")
	assert.Equal(t, "email is required", plain.Error())

	wrapped := Wrap(errors.New("connection refused"), ErrCodeUpstream, "GET /all-reports")
	assert.Equal(t, "GET /all-reports: connection refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "something failed")

	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "nothing %d", 1))
}

func TestConstructors_Codes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected ErrorCode
	}{
		{"not authenticated", NotAuthenticated(), ErrCodeNotAuthenticated},
		{"malformed token", MalformedToken("bad segment"), ErrCodeMalformedToken},
		{"expired session", ExpiredSession(), ErrCodeExpiredSession},
		{"validation", Validation("bad input"), ErrCodeValidation},
		{"validationf", Validationf("bad %s", "thing"), ErrCodeValidation},
		{"validation field", ValidationField("email", "required"), ErrCodeValidation},
		{"upstream", Upstream(503, "unavailable"), ErrCodeUpstream},
		{"upload transfer", UploadTransfer(403, "forbidden"), ErrCodeUploadTransfer},
		{"internal", Internal("oops"), ErrCodeInternal},
		{"internalf", Internalf("oops %d", 2), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Code)
		})
	}
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsNotAuthenticated(NotAuthenticated()))
	assert.True(t, IsMalformedToken(MalformedToken("x")))
	assert.True(t, IsExpiredSession(ExpiredSession()))
	assert.True(t, IsValidation(ValidationField("f", "m")))
	assert.True(t, IsUpstream(Upstream(500, "x")))
	assert.True(t, IsUploadTransfer(UploadTransfer(500, "x")))
	assert.True(t, IsInternal(Internal("x")))

	assert.False(t, IsValidation(Internal("x")))
	assert.False(t, IsUpstream(nil))
	assert.False(t, IsExpiredSession(errors.New("plain")))
}

func TestIsHelpers_WrappedChain(t *testing.T) {
	inner := ExpiredSession()
	outer := fmt.Errorf("derive session: %w", inner)

	assert.True(t, IsExpiredSession(outer))
	assert.Equal(t, ErrCodeExpiredSession, GetCode(outer))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeUpstream, GetCode(Upstream(404, "not found")))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestGetStatus(t *testing.T) {
	assert.Equal(t, 404, GetStatus(Upstream(404, "not found")))
	assert.Equal(t, 502, GetStatus(UploadTransfer(502, "bad gateway")))
	assert.Equal(t, 0, GetStatus(Validation("no status")))
	assert.Equal(t, 0, GetStatus(errors.New("plain")))
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "email", GetField(ValidationField("email", "required")))
	assert.Equal(t, "", GetField(Validation("no field")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}

func TestUpstream_VerbatimBody(t *testing.T) {
	err := Upstream(422, `{"message":"clinic not registered"}`)

	require.NotNil(t, err)
	assert.Equal(t, `{"message":"clinic not registered"}`, err.Message)
	assert.Equal(t, 422, err.Status)
}
