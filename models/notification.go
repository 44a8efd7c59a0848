package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
)

type Notification struct {
	ID           string           `json:"id" gorm:"primaryKey;size:191"`
	Type         NotificationType `json:"type" gorm:"not null;size:50"`
	ActorUserID  string           `json:"actor_user_id" gorm:"not null;size:191"`
	TargetUserID string           `json:"target_user_id" gorm:"not null;size:191;index"`
	PostID       *string          `json:"post_id" gorm:"size:191"`
	CommentID    *string          `json:"comment_id" gorm:"size:191"`
	IsRead       bool             `json:"is_read" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	ActorUser  User  `json:"actor_user" gorm:"foreignKey:ActorUserID"`
	TargetUser User  `json:"target_user" gorm:"foreignKey:TargetUserID"`
	Post       *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
}

// NotificationResponse represents the API response for notifications
type NotificationResponse struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	ActorUser AuthorSummary    `json:"actor_user"`
	PostID    *string          `json:"post_id,omitempty"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationStats represents notification statistics
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

// PaginatedNotifications represents paginated notification response
type PaginatedNotifications struct {
	Notifications []NotificationResponse `json:"notifications"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int64                  `json:"total"`
	HasMore       bool                   `json:"has_more"`
}

// Message returns a human-readable message for the notification
func (n *Notification) Message() string {
	switch n.Type {
	case NotificationTypeFollow:
		return "started following you"
	case NotificationTypeLike:
		return "liked your post"
	case NotificationTypeComment:
		return "commented on your post"
	default:
		return "interacted with your content"
	}
}

// ToResponse converts Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		ActorUser: n.ActorUser.ToAuthorSummary(),
		PostID:    n.PostID,
		Message:   n.Message(),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
