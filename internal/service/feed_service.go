package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
)

// DefaultFeedLimit 个人时间线默认条数
const DefaultFeedLimit = 30

// FeedService 拉模式时间线：关注集 ∪ 自己，按时间倒序。
// 结果为空时回退到全站最新（冷启动）。
type FeedService interface {
	Assemble(ctx context.Context, viewer *model.User, limit int) ([]PostView, error)
	Decorate(ctx context.Context, viewerID uint, posts []*model.Post) ([]PostView, error)
}

type feedService struct {
	postRepo    repository.PostRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository) FeedService {
	return &feedService{postRepo: postRepo, followRepo: followRepo, likeRepo: likeRepo, commentRepo: commentRepo}
}

func (s *feedService) Assemble(ctx context.Context, viewer *model.User, limit int) ([]PostView, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	followingIDs, err := s.followRepo.ListFollowingIDs(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, viewer.ID)

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, limit)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		// 冷启动回退：全站最新
		posts, err = s.postRepo.ListRecent(ctx, limit)
		if err != nil {
			return nil, err
		}
	}
	return s.Decorate(ctx, viewer.ID, posts)
}

// Decorate 批量补齐作者、点赞数、评论数与 liked_by_me，保持传入顺序。
// viewerID 为 0 表示匿名，liked_by_me 恒为 false。
func (s *feedService) Decorate(ctx context.Context, viewerID uint, posts []*model.Post) ([]PostView, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likeMap, err := s.likeRepo.CountMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentMap, err := s.commentRepo.CountMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	likedSet := map[uint]bool{}
	if viewerID != 0 {
		likedSet, err = s.likeRepo.LikedSet(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		var imageURL *string
		if p.ImagePath != nil && *p.ImagePath != "" {
			u := *p.ImagePath
			// 页面表单允许外链图片，上传图片只存文件名
			if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
				u = "/static/uploads/" + u
			}
			imageURL = &u
		}
		views[i] = PostView{
			ID:            p.ID,
			Caption:       p.Caption,
			ImageURL:      imageURL,
			CreatedAt:     p.CreatedAt,
			Author:        NewUserPublic(&p.Author),
			LikesCount:    likeMap[p.ID],
			CommentsCount: commentMap[p.ID],
			LikedByMe:     likedSet[p.ID],
		}
	}
	return views, nil
}
