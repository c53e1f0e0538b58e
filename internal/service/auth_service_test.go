package service

import (
	"context"
	"testing"

	"alcyxob/workout-planner/internal/repository/memory"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewDB().Users(), testSecret, 0)

	user, err := svc.Register(ctx, "Sam", "  Sam@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "sam@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "SAM@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "workout-planner", claims.Issuer)
	assert.Equal(t, DefaultTokenExpiration, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewDB().Users(), testSecret, 0)

	_, err := svc.Register(ctx, "Sam", "sam@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Sam", "SAM@example.com", "different")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	svc := NewAuthService(memory.NewDB().Users(), testSecret, 0)

	_, err := svc.Register(context.Background(), " ", "sam@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Register(context.Background(), "Sam", "sam@example.com", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewDB().Users(), testSecret, 0)
	_, err := svc.Register(ctx, "Sam", "sam@example.com", "hunter22")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "sam@example.com", "hunter23"},
		{"unknown email", "alex@example.com", "hunter22"},
		{"empty password", "sam@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
			assert.Empty(t, token)
			assert.Nil(t, user)
		})
	}
}

func TestNewAuthService_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService(memory.NewDB().Users(), "", 0)
	})
}
