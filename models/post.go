package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog/announcement entry with like and dislike tallies. The
// many-to-many member sets keep the toggles idempotent per user.
type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;index;not null" json:"authorId"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Image   string `json:"image"`

	Likes    int `gorm:"default:0" json:"likes"`
	Dislikes int `gorm:"default:0" json:"dislikes"`

	LikedBy    []User `gorm:"many2many:post_likes" json:"-"`
	DislikedBy []User `gorm:"many2many:post_dislikes" json:"-"`

	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	gorm.Model
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PostID   uuid.UUID `gorm:"type:uuid;index;not null" json:"postId"`
	AuthorID uuid.UUID `gorm:"type:uuid;index;not null" json:"authorId"`
	// Set when the comment is a reply to another comment.
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	gorm.Model
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}
