package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is an article on the marketplace blog.
type BlogPost struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user"`
	Title         string         `gorm:"not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	ImagePublicID string         `gorm:"not null" json:"image_public_id"`
	ImageURL      string         `gorm:"not null" json:"image_url"`
	Category      string         `gorm:"not null;index" json:"category"`
	ReadTime      string         `gorm:"not null" json:"read_time"`
	Comments      []BlogComment  `gorm:"foreignKey:BlogPostID" json:"comments"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BlogComment is a reader comment on a blog post. Name and Avatar are
// snapshots of the commenter taken at comment time; they are not refreshed
// when the user later edits their profile.
type BlogComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BlogPostID uint      `gorm:"not null;index" json:"blog_post_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	Avatar     string    `json:"avatar"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// BlogLike links a user to a blog post they liked.
// The combination of UserID and BlogPostID must be unique.
type BlogLike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_blog_post" json:"user_id"`
	BlogPostID uint      `gorm:"not null;uniqueIndex:idx_user_blog_post" json:"blog_post_id"`
	CreatedAt  time.Time `json:"created_at"`
}
