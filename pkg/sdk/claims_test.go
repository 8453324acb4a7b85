package sdk_test

import (
	"testing"
	"time"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectToken(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "ana@example.com",
		"role":  "SALES",
		"iat":   issued.Unix(),
		"exp":   issued.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := sdk.InspectToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "SALES", claims.Role)
	assert.True(t, claims.IssuedAtTime().Equal(issued))
	assert.True(t, claims.ExpiresAt().Equal(issued.Add(time.Hour)))
}

func TestInspectToken_Opaque(t *testing.T) {
	_, err := sdk.InspectToken("opaque-token")
	require.Error(t, err)

	var empty sdk.TokenClaims
	assert.True(t, empty.ExpiresAt().IsZero())
}
