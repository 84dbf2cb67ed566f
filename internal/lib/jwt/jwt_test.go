package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailblast/internal/models"
)

const secret = "test-secret"

func TestNewToken_RoundTrip(t *testing.T) {
	user := models.User{ID: 42, Email: "a@x.com"}

	token, err := NewToken(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := NewToken(models.User{ID: 1}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewToken(models.User{ID: 1}, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	token, err := NewToken(models.User{ID: 1}, secret, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, err = ParseToken(tampered, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}
