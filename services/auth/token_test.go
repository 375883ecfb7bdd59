package auth

import (
	"testing"
	"time"

	"seriesapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Generate(&models.User{ID: 7, Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)

	id, ok := UserID(claims)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, models.RoleAdmin, Role(claims))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("one", time.Hour).Generate(&models.User{ID: 1, Role: models.RoleRegular})
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)
	token, err := svc.Generate(&models.User{ID: 1, Role: models.RoleRegular})
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRandomSecret(t *testing.T) {
	secret, err := RandomSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 48)

	other, err := RandomSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)

	token, err := NewTokenService(secret, time.Hour).Generate(&models.User{ID: 1, Role: models.RoleRegular})
	require.NoError(t, err)
	_, err = NewTokenService(other, time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
