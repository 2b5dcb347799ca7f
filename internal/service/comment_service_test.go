package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/instalite/internal/errs"
)

func TestCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.register(t, "talker")
	p, err := env.posts.Create(ctx, u, "post", nil)
	require.NoError(t, err)

	_, err = env.comment.Add(ctx, u, p.ID, "   ")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.comment.Add(ctx, u, p.ID, strings.Repeat("x", 1001))
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.comment.Add(ctx, u, 9999, "hello")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCommentListOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.register(t, "chatty")
	p, err := env.posts.Create(ctx, u, "post", nil)
	require.NoError(t, err)

	for _, txt := range []string{"first", "second", "third"} {
		_, err := env.comment.Add(ctx, u, p.ID, txt)
		require.NoError(t, err)
	}

	views, err := env.comment.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "third", views[0].Text)
	assert.Equal(t, "chatty", views[0].Author.Username)

	_, err = env.comment.ListByPost(ctx, 9999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLikeUnknownPost(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "liker")

	err := env.likes.Like(context.Background(), u.ID, 12345)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// unlike 不检查帖子存在性，始终幂等
	assert.NoError(t, env.likes.Unlike(context.Background(), u.ID, 12345))
}
