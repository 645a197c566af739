package provision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordLength(t *testing.T) {
	for _, length := range []int{1, 14, 32, 64} {
		pw, err := GeneratePassword(length)
		require.NoError(t, err)
		assert.Len(t, pw, length)
	}
}

func TestGeneratePasswordDefaultsLength(t *testing.T) {
	pw, err := GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, pw, DefaultPasswordLength)
}

func TestGeneratePasswordUsesDeclaredPopulation(t *testing.T) {
	pw, err := GeneratePassword(256)
	require.NoError(t, err)
	for _, c := range pw {
		assert.True(t, strings.ContainsRune(passwordCharset, c), "unexpected character %q", c)
	}
}

func TestGeneratePasswordDoesNotRepeat(t *testing.T) {
	// Statistical, not exact: two independent 32-character draws colliding
	// would mean the random source is broken.
	a, err := GeneratePassword(32)
	require.NoError(t, err)
	b, err := GeneratePassword(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
