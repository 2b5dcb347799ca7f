package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/instalite/internal/errs"
	"github.com/d60-Lab/instalite/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]*model.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post", errs.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id ASC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]*model.Post, error) {
	var res []*model.Post
	// 时间倒序，同一时间戳按插入序（id 升序）
	err := r.db.WithContext(ctx).Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

// ListRecent limit <= 0 表示不限制条数
func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	q := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var res []*model.Post
	err := q.Find(&res).Error
	return res, err
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Delete 连同帖子的赞和评论一起删除；帖子不存在时静默返回
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
