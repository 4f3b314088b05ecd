package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key")
	userID := "550e8400-e29b-41d4-a716-446655440000"

	token, err := manager.GenerateAccessToken(userID, RoleEditor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "editor", claims.Role)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "casemedia-backend", claims.Issuer)

	role, err := ParseRole(claims.Role)
	require.NoError(t, err)
	assert.True(t, role.AtLeast(RoleEditor))
}

func TestVerifyAccessTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a")
	other := NewJWTManager("secret-b")

	token, err := manager.GenerateAccessToken("user-1", RoleAdmin)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret-key")

	_, err := manager.VerifyAccessToken("not.a.jwt")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = manager.VerifyAccessToken("")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase bearer", "bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing scheme", "abc.def.ghi", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"empty token", "Bearer ", "", true},
		{"empty header", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
