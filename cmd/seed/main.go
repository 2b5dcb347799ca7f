package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/d60-Lab/instalite/config"
	"github.com/d60-Lab/instalite/internal/cache"
	"github.com/d60-Lab/instalite/internal/repository"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/database"
	"github.com/d60-Lab/instalite/pkg/logger"
	"github.com/d60-Lab/instalite/pkg/token"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// 本地演示数据：N 个用户互相关注并发帖。
// 环境变量 N 控制规模，默认 10。
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg); err != nil {
		panic(err)
	}
	db := must(database.InitDB(cfg))

	N := 10
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	authSvc := service.NewAuthService(userRepo, token.NewManager(cfg.SecretKey, cfg.TokenTTL()))
	postSvc := service.NewPostService(postRepo, cfg.UploadDir)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	likeSvc := service.NewLikeService(likeRepo, postRepo)
	counts := cache.NewProfileCounterCache(nil, followRepo, cfg.CacheTTL())
	relSvc := service.NewRelationshipService(followRepo, userRepo, counts)

	ctx := context.Background()
	for i := 0; i < N; i++ {
		name := fmt.Sprintf("demo%03d", i)
		user, err := authSvc.Register(ctx, name, name+"@example.com", "password123")
		if err != nil {
			// 重复执行时跳过已存在的用户
			user, err = userRepo.GetByUsername(ctx, name)
			if err != nil {
				panic(err)
			}
		}
		post := must(postSvc.Create(ctx, user, fmt.Sprintf("hello from %s", name), nil))
		if i > 0 {
			prev := fmt.Sprintf("demo%03d", i-1)
			_ = relSvc.Follow(ctx, user, prev)
			_ = likeSvc.Like(ctx, user.ID, post.ID)
			_, _ = commentSvc.Add(ctx, user, post.ID, "first!")
		}
	}
	fmt.Printf("seeded %d users\n", N)
}
