package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
	"github.com/d60-Lab/instalite/pkg/logger"
)

const maxCaptionLen = 2000

// PostService 帖子的创建、查询与删除（含属主校验）
type PostService interface {
	Create(ctx context.Context, author *model.User, caption string, imagePath *string) (*model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error)
	ListAll(ctx context.Context, limit int) ([]*model.Post, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type postService struct {
	postRepo  repository.PostRepository
	uploadDir string
}

func NewPostService(postRepo repository.PostRepository, uploadDir string) PostService {
	return &postService{postRepo: postRepo, uploadDir: uploadDir}
}

func (s *postService) Create(ctx context.Context, author *model.User, caption string, imagePath *string) (*model.Post, error) {
	caption = strings.TrimSpace(caption)
	if len(caption) > maxCaptionLen {
		return nil, fmt.Errorf("%w: caption too long", errs.ErrValidation)
	}
	post := &model.Post{AuthorID: author.ID, Caption: caption, ImagePath: imagePath}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = *author
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

func (s *postService) ListAll(ctx context.Context, limit int) ([]*model.Post, error) {
	return s.postRepo.ListRecent(ctx, limit)
}

// Delete 仅作者或管理员可删；帖子不存在时幂等返回。
// 帖子带图时顺带清理上传文件，文件缺失不视为错误。
func (s *postService) Delete(ctx context.Context, actor *model.User, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	if post.AuthorID != actor.ID && !actor.IsAdmin {
		return fmt.Errorf("%w: not the author", errs.ErrForbidden)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	if post.ImagePath != nil && *post.ImagePath != "" {
		path := filepath.Join(s.uploadDir, filepath.Base(*post.ImagePath))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("remove post image", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}
