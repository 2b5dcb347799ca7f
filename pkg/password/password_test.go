package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h, "$argon2id$v="), "hash must self-describe algorithm and params")
	assert.True(t, Verify("correct horse battery staple", h))
	assert.False(t, Verify("wrong password", h))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("same input")
	require.NoError(t, err)
	h2, err := Hash("same input")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("same input", h1))
	assert.True(t, Verify("same input", h2))
}

func TestVerifyMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash",
		"$argon2id$",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=abc,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$ZGlnZXN0",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",
	}
	for _, c := range cases {
		assert.False(t, Verify("anything", c), "malformed hash %q must verify false, not panic", c)
	}
}

func TestLongPasswords(t *testing.T) {
	// well past bcrypt's 72-byte limit, still fine here
	long := strings.Repeat("x", 500)
	h, err := Hash(long)
	require.NoError(t, err)
	assert.True(t, Verify(long, h))
	assert.False(t, Verify(long+"y", h))

	_, err = Hash(strings.Repeat("x", MaxLen+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
