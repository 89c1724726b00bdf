package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue(Claims{UserID: 42, Login: "clerk", Role: "User"})
	require.NoError(t, err)

	claims, err := svc.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "clerk", claims.Login)
	assert.Equal(t, "User", claims.Role)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	signed, err := NewService("secret-a", time.Hour).
		Issue(Claims{UserID: 1, Login: "clerk", Role: "User"})
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsExpired(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService("test-secret", time.Hour).
		WithClock(func() time.Time { return issuedAt })

	signed, err := svc.Issue(Claims{UserID: 1, Login: "clerk", Role: "User"})
	require.NoError(t, err)

	// Still valid just before the TTL runs out.
	svc.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) })
	_, err = svc.Parse(signed)
	assert.NoError(t, err)

	svc.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) })
	_, err = svc.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	_, err := svc.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
