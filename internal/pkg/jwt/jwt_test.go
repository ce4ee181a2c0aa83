package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("emp-1", employee.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims[ClaimEmployeeID])
	assert.Equal(t, "manager", claims[ClaimRole])
	assert.Equal(t, TokenTypeAccess, claims[ClaimType])
}

func TestGenerateAccessToken_Expired(t *testing.T) {
	svc := &JWTService{
		tokenAuth:        NewJWTService("test-secret", time.Hour).JWTAuth(),
		accessExpiration: time.Hour,
		now:              func() time.Time { return time.Now().Add(-2 * time.Hour) },
	}

	token, _, err := svc.GenerateAccessToken("emp-1", employee.RoleEmployee)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	assert.Error(t, err)
}

func TestGenerateAccessToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("one", time.Hour).GenerateAccessToken("emp-1", employee.RoleEmployee)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(NewJWTService("two", time.Hour).JWTAuth(), token)
	assert.Error(t, err)
}
