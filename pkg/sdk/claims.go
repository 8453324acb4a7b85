package sdk

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// TokenClaims are the informational claims of an access token. They are decoded
// without signature verification and must never be used for authorization.
type TokenClaims struct {
	Subject  string `mapstructure:"sub"`
	Email    string `mapstructure:"email"`
	Role     string `mapstructure:"role"`
	IssuedAt int64  `mapstructure:"iat"`
	Expiry   int64  `mapstructure:"exp"`
}

// ExpiresAt returns the exp claim as a time, or zero when absent.
func (c TokenClaims) ExpiresAt() time.Time {
	if c.Expiry == 0 {
		return time.Time{}
	}
	return time.Unix(c.Expiry, 0)
}

// IssuedAtTime returns the iat claim as a time, or zero when absent.
func (c TokenClaims) IssuedAtTime() time.Time {
	if c.IssuedAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.IssuedAt, 0)
}

// InspectToken decodes the claims of a JWT access token. Opaque tokens return an error.
func InspectToken(token string) (*TokenClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	var claims TokenClaims
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &claims,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build claims decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(mapClaims)); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}
	return &claims, nil
}
