package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueValidateRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	tok, err := m.Issue("42")
	require.NoError(t, err)

	sub, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	// 负 TTL 的管理器签出的令牌立即过期
	tok, err := NewManager("test-secret", -time.Minute).Issue("42")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTamperedSignature(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	tok, err := m.Issue("42")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	parts[2] = "AAAA" + parts[2][4:]
	_, err = m.Validate(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a", time.Minute).Issue("42")
	require.NoError(t, err)
	_, err = NewManager("secret-b", time.Minute).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissingSubject(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	tok, err := m.Issue("")
	require.NoError(t, err)
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	for _, in := range []string{"", "abc", "a.b.c", "....", strings.Repeat("x", 4096)} {
		_, err := m.Validate(in)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", in)
	}
}
