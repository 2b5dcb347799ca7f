package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uint) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*model.Comment, error)
	CountMap(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment", errs.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id ASC").
		Find(&res).Error
	return res, err
}

// CountMap 按帖子批量统计评论数
func (r *commentRepository) CountMap(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID uint
		Cnt    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.PostID] = rw.Cnt
	}
	return out, nil
}

// Delete 评论不存在时静默返回
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
