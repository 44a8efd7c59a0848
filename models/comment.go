package models

import (
	"time"
)

type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	PostID     string    `json:"post_id" gorm:"not null;size:191;index"`
	AuthorID   string    `json:"author_id" gorm:"not null;size:191;index"`
	Content    string    `json:"content" gorm:"not null;size:280"`
	LikesCount int       `json:"likes_count" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}

type CommentResponse struct {
	ID         string        `json:"id"`
	PostID     string        `json:"post_id"`
	Content    string        `json:"content"`
	Author     AuthorSummary `json:"author"`
	LikesCount int           `json:"likes_count"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		Content:    c.Content,
		Author:     c.Author.ToAuthorSummary(),
		LikesCount: c.LikesCount,
		CreatedAt:  c.CreatedAt,
	}
}
