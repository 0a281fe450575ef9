package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("test1234", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "test1234", hash)

	require.True(t, CheckPassword(hash, "test1234"))
	require.False(t, CheckPassword(hash, "test12345"))
	require.False(t, CheckPassword("not-a-hash", "test1234"))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	id := NewSessionID()

	token, err := m.Generate(id, 42)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, id, claims.SessionID())
	require.Equal(t, int64(42), claims.DriverID)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Generate(NewSessionID(), 1)
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	forged, err := NewTokenManager("other", time.Hour).Generate(NewSessionID(), 2)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = m.Parse(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewTokenManager("secret", -time.Minute).Generate(NewSessionID(), 1)
	require.NoError(t, err)
	_, err = m.Parse(expired)
	require.ErrorIs(t, err, ErrInvalidToken)
}
