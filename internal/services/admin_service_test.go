package services

import (
	"testing"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPlaintext(t *testing.T) {
	svc := NewAdminService(&config.Config{AdminPassword: "hunter2"})
	assert.NoError(t, svc.Verify("hunter2"))
	assert.ErrorIs(t, svc.Verify("wrong"), ErrInvalidPassword)
}

func TestVerifyBcryptHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAdminService(&config.Config{
		AdminPassword:     "ignored",
		AdminPasswordHash: string(hash),
	})
	assert.NoError(t, svc.Verify("hunter2"))
	assert.ErrorIs(t, svc.Verify("ignored"), ErrInvalidPassword)
}

func TestVerifyUnconfigured(t *testing.T) {
	svc := NewAdminService(&config.Config{})
	assert.ErrorIs(t, svc.Verify("anything"), ErrNoAdminSecret)
}

func TestIssueTokenClaims(t *testing.T) {
	svc := NewAdminService(&config.Config{JWTSecret: "secret", AdminSessionTTL: 0})
	signed, err := svc.IssueToken()
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["role"])
	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "zero TTL must not set an expiry")
}

func TestIssueTokenWithTTL(t *testing.T) {
	svc := NewAdminService(&config.Config{JWTSecret: "secret", AdminSessionTTL: time.Hour})
	signed, err := svc.IssueToken()
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}
