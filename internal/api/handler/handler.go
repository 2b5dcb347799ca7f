package handler

import (
	"github.com/d60-Lab/instalite/config"
	"github.com/d60-Lab/instalite/internal/service"
)

// Handler 聚合各业务 service，供路由注册使用
type Handler struct {
	cfg        config.Config
	authSvc    service.AuthService
	userSvc    service.UserService
	postSvc    service.PostService
	commentSvc service.CommentService
	likeSvc    service.LikeService
	relSvc     service.RelationshipService
	feedSvc    service.FeedService
}

func NewHandler(
	cfg config.Config,
	authSvc service.AuthService,
	userSvc service.UserService,
	postSvc service.PostService,
	commentSvc service.CommentService,
	likeSvc service.LikeService,
	relSvc service.RelationshipService,
	feedSvc service.FeedService,
) *Handler {
	return &Handler{
		cfg:        cfg,
		authSvc:    authSvc,
		userSvc:    userSvc,
		postSvc:    postSvc,
		commentSvc: commentSvc,
		likeSvc:    likeSvc,
		relSvc:     relSvc,
		feedSvc:    feedSvc,
	}
}
