package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/pkg/auth"
)

func TestGenerateAndValidate(t *testing.T) {
	config.Set("JWT_SECRET", "test-secret")

	token, err := auth.GenerateToken(7, "employee")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "employee", claims.Role)
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	config.Set("JWT_SECRET", "one")
	token, err := auth.GenerateToken(1, "admin")
	require.NoError(t, err)

	config.Set("JWT_SECRET", "two")
	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	config.Set("JWT_SECRET", "test-secret")
	claims := auth.Claims{
		ID:   1,
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	config.Set("JWT_SECRET", "test-secret")
	claims := auth.Claims{
		ID:   1,
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, auth.CheckPassword(hash, "secret1"))
	assert.False(t, auth.CheckPassword(hash, "secret2"))
}

func TestIdentityContext(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{ID: 3, Role: auth.RoleAdmin})
	id, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.True(t, id.IsAdmin())
}
