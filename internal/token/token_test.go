package token

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestNew_LengthAndAlphabet — токен детерминированной длины и hex-алфавита.
func TestNew_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	for _, byteLen := range []int{16, 32, 64} {
		tok := New(byteLen)
		require.Len(t, tok, 2*byteLen)

		_, err := hex.DecodeString(tok)
		require.NoError(t, err)
		require.False(t, strings.HasPrefix(tok, FallbackPrefix))
	}
}

// TestNew_DefaultLength — неположительный byteLen заменяется дефолтным классом.
func TestNew_DefaultLength(t *testing.T) {
	t.Parallel()

	require.Len(t, New(0), 2*AccessTokenBytes)
	require.Len(t, New(-5), 2*AccessTokenBytes)
}

// TestNew_StatisticalUniqueness — 10 000 последовательных вызовов не дают
// ни одной пары одинаковых токенов.
func TestNew_StatisticalUniqueness(t *testing.T) {
	t.Parallel()

	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		tok := New(SignatureBytes)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token at iteration %d", i)
		seen[tok] = struct{}{}
	}
}

// TestNewSessionID — идентификатор класса UUID: парсится и не повторяется.
func TestNewSessionID(t *testing.T) {
	t.Parallel()

	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		sid := NewSessionID()
		require.NotEmpty(t, sid)

		_, err := uuid.Parse(sid)
		require.NoError(t, err)

		_, dup := seen[sid]
		require.False(t, dup, "duplicate sid at iteration %d", i)
		seen[sid] = struct{}{}
	}
}

// TestFallback_Distinguishable — деградированный токен всегда помечен
// префиксом и не совпадает по форме с боевым.
func TestFallback_Distinguishable(t *testing.T) {
	t.Parallel()

	tok := fallback(SignatureBytes)
	require.True(t, strings.HasPrefix(tok, FallbackPrefix))
	require.NotEqual(t, 2*SignatureBytes, len(tok))
}
