package firebase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fn7-backend/internal/sdk"
)

var (
	errAuthUnavailable = errors.New("token verification is not available")
	errEmptyBearer     = errors.New("empty bearer token")
)

// identity is who a call acts as.
type identity struct {
	UID     string
	Default bool
}

// resolve turns the raw Authorization value into an identity. No token means
// the default identity; otherwise the optional "Bearer " scheme is dropped and
// the rest is verified as a Firebase ID token.
func (s *SDK) resolve(ctx context.Context, token string) (identity, error) {
	raw := sdk.BareToken(token)
	if raw == "" {
		if strings.TrimSpace(token) != "" {
			return identity{}, errEmptyBearer
		}
		return identity{UID: s.defaultUID, Default: true}, nil
	}
	if s.auth == nil {
		return identity{}, errAuthUnavailable
	}
	tok, err := s.auth.VerifyIDToken(ctx, raw)
	if err != nil {
		return identity{}, fmt.Errorf("invalid token: %w", err)
	}
	return identity{UID: tok.UID}, nil
}
