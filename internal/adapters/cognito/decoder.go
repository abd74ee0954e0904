package cognito

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
	apperrors "github.com/medisys/reports-ui-api/internal/errors"
)

// Decoder decodes compact tokens without hosted UI configuration or
// signature verification. Mock auth mode uses it to read locally minted
// tokens; the claim mapping is identical to the hosted provider's.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder creates a decode-only token codec.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode parses the compact token and maps its claims.
func (d *Decoder) Decode(_ context.Context, rawToken string) (domainauth.Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(rawToken, mapClaims); err != nil {
		return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedToken, "decode token")
	}
	return mapToClaims(mapClaims), nil
}
