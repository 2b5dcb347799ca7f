package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/instalite/config"
	"github.com/d60-Lab/instalite/internal/api/handler"
	"github.com/d60-Lab/instalite/internal/api/router"
	"github.com/d60-Lab/instalite/internal/cache"
	"github.com/d60-Lab/instalite/internal/repository"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/database"
	"github.com/d60-Lab/instalite/pkg/logger"
	"github.com/d60-Lab/instalite/pkg/token"
	"github.com/d60-Lab/instalite/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// @title InstaLite API
// @version 1.0
// @description Server-rendered social app with cookie/bearer auth.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.Env}); err != nil {
			panic(err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing := must(tracing.Init(context.Background(), cfg))
	defer shutdownTracing(context.Background())

	db := must(database.InitDB(cfg))

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// services
	tokens := token.NewManager(cfg.SecretKey, cfg.TokenTTL())
	counts := cache.NewProfileCounterCache(redisClient, followRepo, cfg.CacheTTL())
	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo)
	postSvc := service.NewPostService(postRepo, cfg.UploadDir)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	likeSvc := service.NewLikeService(likeRepo, postRepo)
	relSvc := service.NewRelationshipService(followRepo, userRepo, counts)
	feedSvc := service.NewFeedService(postRepo, followRepo, likeRepo, commentRepo)

	h := handler.NewHandler(cfg, authSvc, userSvc, postSvc, commentSvc, likeSvc, relSvc, feedSvc)
	r := router.New(cfg, h, authSvc)

	logger.Info("server starting", zap.String("addr", cfg.ServerAddr), zap.String("env", cfg.Env))
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
