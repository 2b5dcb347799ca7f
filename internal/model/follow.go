package model

import "time"

// Follow 关注关系（A 关注 B）
type Follow struct {
	FollowerID  uint `gorm:"primaryKey;index:idx_follow_pair,unique;not null" json:"follower_id"`
	FollowingID uint `gorm:"primaryKey;index:idx_follow_pair,unique;index:idx_follow_following;not null" json:"following_id"`
	// 复合唯一键，避免重复关注
	// idx_follow_pair = (follower_id, following_id)
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
