package model

import "time"

// Comment 评论，随帖子或作者级联删除
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index:idx_comment_post;not null" json:"post_id"`
	AuthorID  uint      `gorm:"index:idx_comment_author;not null" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author"`
}

func (Comment) TableName() string { return "comments" }
