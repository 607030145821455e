// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	t.Run("salts differ between calls", func(t *testing.T) {
		other, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		assert.True(t, VerifyPassword("s3cret-password", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, VerifyPassword("not-the-password", hash))
	})

	t.Run("tampered hash", func(t *testing.T) {
		tampered := hash[:len(hash)-2] + "xx"
		assert.False(t, VerifyPassword("s3cret-password", tampered))
	})

	t.Run("malformed encodings verify false", func(t *testing.T) {
		cases := []string{
			"",
			"plaintext",
			"$argon2id$v=19$m=65536,t=1,p=4$short",
			"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			"$argon2id$v=1$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		}
		for _, encoded := range cases {
			assert.False(t, VerifyPassword("anything", encoded), encoded)
		}
	})
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	t.Run("valid stored hash", func(t *testing.T) {
		assert.True(t, VerifyPasswordTimingSafe("s3cret-password", &hash))
		assert.False(t, VerifyPasswordTimingSafe("wrong", &hash))
	})

	t.Run("missing account always false", func(t *testing.T) {
		assert.False(t, VerifyPasswordTimingSafe("anything", nil))

		empty := ""
		assert.False(t, VerifyPasswordTimingSafe("anything", &empty))
	})

	t.Run("dummy password never authenticates a missing account", func(t *testing.T) {
		assert.False(t, VerifyPasswordTimingSafe(
			"dummy_password_for_timing_attack_prevention",
			nil,
		))
	})
}
