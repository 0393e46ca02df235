package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/services"
)

const testSecret = "test-secret-0123456789"

func TestJWTService_RoundTrip(t *testing.T) {
	svc := services.NewJWTService(testSecret)

	token, err := svc.GenerateToken("client-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.Subject)
	assert.Equal(t, "todos", claims.Scope)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := services.NewJWTService("another-secret-0123456789").GenerateToken("client-1", time.Hour)
	require.NoError(t, err)

	_, err = services.NewJWTService(testSecret).ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := services.NewJWTService(testSecret)
	token, err := svc.GenerateToken("client-1", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "client-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = services.NewJWTService(testSecret).ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := services.NewJWTService(testSecret).ValidateToken("invalid.jwt.token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
