package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return New("test-signing-secret", "boss", string(hash), time.Hour)
}

func TestLoginRoles(t *testing.T) {
	s := newTestService(t)

	role, err := s.Login("boss", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = s.Login("spectator", "whatever")
	require.NoError(t, err)
	assert.Equal(t, RoleSpectator, role)

	role, err = s.Login("simulator", "")
	require.NoError(t, err)
	assert.Equal(t, RoleSimulator, role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestService(t)

	_, err := s.Login("boss", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestService(t)

	for _, role := range []Role{RoleAdmin, RoleSpectator, RoleSimulator} {
		token, err := s.GenerateToken(role)
		require.NoError(t, err)

		got, err := s.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, role, got)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := newTestService(t)
	other := New("a-different-secret", "", "", time.Hour)

	token, err := s.GenerateToken(RoleAdmin)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	s := New("test-signing-secret", "boss", string(hash), -time.Minute)

	token, err := s.GenerateToken(RoleSpectator)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGenerateTokenRejectsUnknownRole(t *testing.T) {
	s := newTestService(t)
	_, err := s.GenerateToken(Role("superuser"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}
