package model

import "time"

// Like 点赞关系
type Like struct {
	UserID uint `gorm:"primaryKey;index:idx_like_pair,unique;not null" json:"user_id"`
	PostID uint `gorm:"primaryKey;index:idx_like_pair,unique;index:idx_like_post;not null" json:"post_id"`
	// 复合唯一键，同一用户对同一帖子至多一个赞
	// idx_like_pair = (user_id, post_id)
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }
