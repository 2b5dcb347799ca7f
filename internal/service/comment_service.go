package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
)

const maxCommentLen = 1000

// CommentService 评论的增删查（含属主校验）
type CommentService interface {
	Add(ctx context.Context, author *model.User, postID uint, text string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]CommentView, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) Add(ctx context.Context, author *model.User, postID uint, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLen {
		return nil, fmt.Errorf("%w: comment must be 1-%d chars", errs.ErrValidation, maxCommentLen)
	}
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: post", errs.ErrNotFound)
	}
	c := &model.Comment{PostID: postID, AuthorID: author.ID, Text: text}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Author = *author
	return c, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uint) ([]CommentView, error) {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: post", errs.ErrNotFound)
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt, Author: NewUserPublic(&c.Author)}
	}
	return views, nil
}

// Delete 仅作者或管理员可删；评论不存在时幂等返回
func (s *commentService) Delete(ctx context.Context, actor *model.User, id uint) error {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	if c.AuthorID != actor.ID && !actor.IsAdmin {
		return fmt.Errorf("%w: not the author", errs.ErrForbidden)
	}
	return s.commentRepo.Delete(ctx, id)
}
