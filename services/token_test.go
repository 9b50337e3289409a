package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	issuer, err := NewTokenIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, issuer)
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", 0)
	require.NoError(t, err)
	teacher := &models.Teacher{ID: uuid.New()}

	raw, err := issuer.Issue(teacher)
	require.NoError(t, err)
	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, claims.ID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenIssuerRejectsEmptyKeySignature(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:   uuid.New(),
		Role: models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = issuer.Parse(forged)
	assert.Error(t, err)
}
