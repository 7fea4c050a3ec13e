package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	s := Session{ExpiresAt: now.Add(time.Hour)}
	require.False(t, s.Expired(now))

	s.ExpiresAt = now.Add(-time.Second)
	require.True(t, s.Expired(now))

	// Граница: expires_at == now считается просроченной.
	s.ExpiresAt = now
	require.True(t, s.Expired(now))
}

func TestGuideSession_Valid(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	gs := GuideSession{ExpiresAt: now.Add(time.Hour)}
	require.True(t, gs.Valid(now))

	revoked := gs
	revoked.Revoked = true
	require.False(t, revoked.Valid(now))

	expired := gs
	expired.ExpiresAt = now.Add(-time.Second)
	require.False(t, expired.Valid(now))

	boundary := gs
	boundary.ExpiresAt = now
	require.False(t, boundary.Valid(now))
}
