package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/repository"
)

// LikeService 点赞/取消点赞，两个方向都幂等
type LikeService interface {
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) LikeService {
	return &likeService{likeRepo: likeRepo, postRepo: postRepo}
}

func (s *likeService) Like(ctx context.Context, userID, postID uint) error {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: post", errs.ErrNotFound)
	}
	return s.likeRepo.Create(ctx, userID, postID)
}

// Unlike 未点赞时也是 no-op
func (s *likeService) Unlike(ctx context.Context, userID, postID uint) error {
	return s.likeRepo.Delete(ctx, userID, postID)
}
