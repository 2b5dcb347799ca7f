package service

import (
	"time"

	"github.com/d60-Lab/instalite/internal/model"
)

// UserPublic 对外可见的用户信息
type UserPublic struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserPublic(u *model.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// PostView 帖子 + 聚合信息（点赞数、评论数、当前用户是否点赞）
type PostView struct {
	ID            uint       `json:"id"`
	Caption       string     `json:"caption"`
	ImageURL      *string    `json:"image_url"`
	CreatedAt     time.Time  `json:"created_at"`
	Author        UserPublic `json:"author"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	LikedByMe     bool       `json:"liked_by_me"`
}

// CommentView 评论 + 作者信息
type CommentView struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    UserPublic `json:"author"`
}

// Profile 个人页：公开信息 + 关注统计
type Profile struct {
	User           UserPublic `json:"user"`
	FollowerCount  int64      `json:"follower_count"`
	FollowingCount int64      `json:"following_count"`
	FollowedByMe   bool       `json:"followed_by_me"`
}
