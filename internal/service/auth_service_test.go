package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/pkg/token"
)

func testTokens() *token.Manager {
	return token.NewManager("test-secret", time.Minute)
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, "alice", "Alice@Example.COM", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email normalized to lowercase")
	assert.False(t, user.IsAdmin)

	tok, logged, err := env.auth.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	// 令牌 subject 解回注册用户的 id
	resolved, err := env.auth.ResolveSubject(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), mustSubject(t, tok))
}

func mustSubject(t *testing.T, tok string) string {
	t.Helper()
	sub, err := testTokens().Validate(tok)
	require.NoError(t, err)
	return sub
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name, username, email, password string
	}{
		{"short username", "ab", "a@example.com", "password123"},
		{"bad username chars", "a b c", "a@example.com", "password123"},
		{"bad email", "alice", "not-an-email", "password123"},
		{"short password", "alice", "a@example.com", "short"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, c.username, c.email, c.password)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "taken")
	_, err := env.auth.Register(ctx, "taken", "new@example.com", "password123")
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = env.auth.Register(ctx, "someoneelse", "taken@example.com", "password123")
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "bob")

	_, _, err := env.auth.Login(ctx, "bob", "wrong password")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, _, err = env.auth.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestResolveSubjectFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.ResolveSubject(ctx, "garbage")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	// 合法令牌但用户已不存在
	u := env.register(t, "ghost")
	tok, _, err := env.auth.Login(ctx, "ghost", "password123")
	require.NoError(t, err)
	require.NoError(t, env.users.Delete(ctx, u.ID))

	_, err = env.auth.ResolveSubject(ctx, tok)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}
