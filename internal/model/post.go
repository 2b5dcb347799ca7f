package model

import "time"

// Post 内容主体，作者删除时级联删除
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index:idx_post_author;not null" json:"author_id"`
	Caption   string    `gorm:"type:text" json:"caption"`
	ImagePath *string   `gorm:"type:varchar(255)" json:"image_path,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string { return "posts" }
