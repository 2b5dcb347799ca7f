package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/instalite/internal/cache"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
)

type testEnv struct {
	db      *gorm.DB
	auth    AuthService
	users   UserService
	posts   PostService
	comment CommentService
	likes   LikeService
	rel     RelationshipService
	feed    FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}, &model.Follow{},
	))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	counts := cache.NewProfileCounterCache(nil, followRepo, time.Minute)

	return &testEnv{
		db:      db,
		auth:    NewAuthService(userRepo, testTokens()),
		users:   NewUserService(userRepo),
		posts:   NewPostService(postRepo, t.TempDir()),
		comment: NewCommentService(commentRepo, postRepo),
		likes:   NewLikeService(likeRepo, postRepo),
		rel:     NewRelationshipService(followRepo, userRepo, counts),
		feed:    NewFeedService(postRepo, followRepo, likeRepo, commentRepo),
	}
}

func (e *testEnv) register(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), name, name+"@example.com", "password123")
	require.NoError(t, err)
	return u
}

func TestFeedColdStartFallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.register(t, "author")
	_, err := env.posts.Create(ctx, author, "global post", nil)
	require.NoError(t, err)

	// 新用户没关注任何人也没发过帖，时间线回退到全站最新
	newcomer := env.register(t, "newcomer")
	views, err := env.feed.Assemble(ctx, newcomer, 30)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "global post", views[0].Caption)
	assert.Equal(t, "author", views[0].Author.Username)
	assert.False(t, views[0].LikedByMe)
}

func TestFeedScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A 注册并发帖 P；B 注册、关注 A、点赞并评论 P
	a := env.register(t, "userA")
	p, err := env.posts.Create(ctx, a, "P", nil)
	require.NoError(t, err)

	b := env.register(t, "userB")
	require.NoError(t, env.rel.Follow(ctx, b, "userA"))
	require.NoError(t, env.likes.Like(ctx, b.ID, p.ID))
	_, err = env.comment.Add(ctx, b, p.ID, "hi")
	require.NoError(t, err)

	// B 的时间线里有 P，计数齐全
	bFeed, err := env.feed.Assemble(ctx, b, 30)
	require.NoError(t, err)
	require.Len(t, bFeed, 1)
	assert.Equal(t, p.ID, bFeed[0].ID)
	assert.Equal(t, int64(1), bFeed[0].LikesCount)
	assert.Equal(t, int64(1), bFeed[0].CommentsCount)
	assert.True(t, bFeed[0].LikedByMe)

	// A 没关注任何人，靠自己的帖子也能看到 P
	aFeed, err := env.feed.Assemble(ctx, a, 30)
	require.NoError(t, err)
	require.Len(t, aFeed, 1)
	assert.Equal(t, p.ID, aFeed[0].ID)
	assert.False(t, aFeed[0].LikedByMe)

	// 删除 B 后 P 的赞和评论都归零
	require.NoError(t, env.users.Delete(ctx, b.ID))
	aFeed, err = env.feed.Assemble(ctx, a, 30)
	require.NoError(t, err)
	require.Len(t, aFeed, 1)
	assert.Equal(t, int64(0), aFeed[0].LikesCount)
	assert.Equal(t, int64(0), aFeed[0].CommentsCount)
}

func TestFeedOrderAndLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "writerA")
	b := env.register(t, "writerB")
	require.NoError(t, env.rel.Follow(ctx, a, "writerB"))

	for i := 0; i < 3; i++ {
		_, err := env.posts.Create(ctx, a, "from A", nil)
		require.NoError(t, err)
		_, err = env.posts.Create(ctx, b, "from B", nil)
		require.NoError(t, err)
	}

	views, err := env.feed.Assemble(ctx, a, 4)
	require.NoError(t, err)
	require.Len(t, views, 4)
	// 时间倒序：每轮先 A 后 B，所以最新的是 B
	for i, want := range []string{"from B", "from A", "from B", "from A"} {
		assert.Equal(t, want, views[i].Caption)
	}
	for i := 1; i < len(views); i++ {
		assert.False(t, views[i].CreatedAt.After(views[i-1].CreatedAt))
	}
}

func TestFeedDefaultLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.register(t, "prolific")
	for i := 0; i < DefaultFeedLimit+5; i++ {
		_, err := env.posts.Create(ctx, u, "post", nil)
		require.NoError(t, err)
	}
	views, err := env.feed.Assemble(ctx, u, 0)
	require.NoError(t, err)
	assert.Len(t, views, DefaultFeedLimit)
}
