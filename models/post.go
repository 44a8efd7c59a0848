package models

import (
	"time"
)

type Post struct {
	ID             string      `json:"id" gorm:"primaryKey;size:191"`
	AuthorID       string      `json:"author_id" gorm:"not null;size:191;index"`
	Content        string      `json:"content" gorm:"not null;size:280"`
	Images         StringSlice `json:"images" gorm:"type:json"`
	Published      bool        `json:"published"`
	LikesCount     int         `json:"likes_count" gorm:"default:0"`
	CommentsCount  int         `json:"comments_count" gorm:"default:0"`
	SharesCount    int         `json:"shares_count" gorm:"default:0"`
	BookmarksCount int         `json:"bookmarks_count" gorm:"default:0"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	Author    User           `json:"author" gorm:"foreignKey:AuthorID"`
	Likes     []PostLike     `json:"likes,omitempty" gorm:"foreignKey:PostID"`
	Bookmarks []PostBookmark `json:"bookmarks,omitempty" gorm:"foreignKey:PostID"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_pair"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_pair"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"post" gorm:"foreignKey:PostID"`
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// PostBookmark represents a bookmarked post by a user
type PostBookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_post_bookmarks_pair"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_post_bookmarks_pair"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"post" gorm:"foreignKey:PostID"`
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// PostResponse is a post annotated with the viewer's interaction state.
type PostResponse struct {
	ID             string        `json:"id"`
	Content        string        `json:"content"`
	Images         StringSlice   `json:"images"`
	Author         AuthorSummary `json:"author"`
	LikesCount     int           `json:"likes_count"`
	CommentsCount  int           `json:"comments_count"`
	SharesCount    int           `json:"shares_count"`
	BookmarksCount int           `json:"bookmarks_count"`
	IsLiked        bool          `json:"is_liked"`
	IsBookmarked   bool          `json:"is_bookmarked"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// FeedResponse is a cursor-paginated page of posts. NextCursor is null on the
// terminal page.
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	NextCursor *string        `json:"next_cursor"`
}

func (p *Post) ToResponse(isLiked, isBookmarked bool) PostResponse {
	return PostResponse{
		ID:             p.ID,
		Content:        p.Content,
		Images:         p.Images,
		Author:         p.Author.ToAuthorSummary(),
		LikesCount:     p.LikesCount,
		CommentsCount:  p.CommentsCount,
		SharesCount:    p.SharesCount,
		BookmarksCount: p.BookmarksCount,
		IsLiked:        isLiked,
		IsBookmarked:   isBookmarked,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
