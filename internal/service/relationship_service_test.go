package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
)

func TestFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	me := env.register(t, "narcissus")

	err := env.rel.Follow(context.Background(), me, "narcissus")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestFollowUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	me := env.register(t, "seeker")

	err := env.rel.Follow(context.Background(), me, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = env.rel.Unfollow(context.Background(), me, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProfileCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	star := env.register(t, "star")
	f1 := env.register(t, "fan1")
	f2 := env.register(t, "fan2")

	require.NoError(t, env.rel.Follow(ctx, f1, "star"))
	require.NoError(t, env.rel.Follow(ctx, f2, "star"))
	require.NoError(t, env.rel.Follow(ctx, star, "fan1"))

	p, err := env.rel.Profile(ctx, "star", f1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.FollowerCount)
	assert.Equal(t, int64(1), p.FollowingCount)
	assert.True(t, p.FollowedByMe)

	// 匿名访问
	p, err = env.rel.Profile(ctx, "star", nil)
	require.NoError(t, err)
	assert.False(t, p.FollowedByMe)

	_, err = env.rel.Profile(ctx, "ghost", nil)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteOwnershipRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "owner")
	other := env.register(t, "intruder")
	admin := env.register(t, "root")
	require.NoError(t, env.db.Model(&model.User{}).Where("id = ?", admin.ID).Update("is_admin", true).Error)
	admin.IsAdmin = true

	p, err := env.posts.Create(ctx, author, "mine", nil)
	require.NoError(t, err)
	c, err := env.comment.Add(ctx, author, p.ID, "my comment")
	require.NoError(t, err)

	// 非作者非管理员删除被拒
	assert.ErrorIs(t, env.comment.Delete(ctx, other, c.ID), errs.ErrForbidden)
	assert.ErrorIs(t, env.posts.Delete(ctx, other, p.ID), errs.ErrForbidden)

	// 管理员可以删
	require.NoError(t, env.comment.Delete(ctx, admin, c.ID))
	require.NoError(t, env.posts.Delete(ctx, admin, p.ID))

	// 已删除的目标再删是 no-op
	assert.NoError(t, env.comment.Delete(ctx, other, c.ID))
	assert.NoError(t, env.posts.Delete(ctx, other, p.ID))
}
