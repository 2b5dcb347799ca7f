package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/instalite/internal/model"
)

type LikeRepository interface {
	Create(ctx context.Context, userID, postID uint) error
	Delete(ctx context.Context, userID, postID uint) error
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	CountMap(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Create(ctx context.Context, userID, postID uint) error {
	l := &model.Like{UserID: userID, PostID: postID}
	// 幂等：重复点赞不报错，并发撞唯一键也归为 no-op
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CountMap 按帖子批量统计点赞数
func (r *likeRepository) CountMap(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID uint
		Cnt    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Like{}).
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

// LikedSet 返回 userID 在给定帖子集合中点过赞的帖子
func (r *likeRepository) LikedSet(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
