package models

import (
	"time"
)

// VideoChatSession is a plain session record. There is no signaling backend;
// the row only tracks who asked to be matched.
type VideoChatSession struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	SessionID    string    `json:"session_id" gorm:"uniqueIndex;not null;size:191"`
	Participants string    `json:"participants" gorm:"type:json"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VideoChatParticipant is one entry of the participants JSON blob.
type VideoChatParticipant struct {
	UserID      string                `json:"user_id"`
	JoinedAt    time.Time             `json:"joined_at"`
	IsAnonymous bool                  `json:"is_anonymous"`
	Preferences *VideoChatPreferences `json:"preferences,omitempty"`
}

type VideoChatPreferences struct {
	Language  *string  `json:"language,omitempty"`
	Interests []string `json:"interests,omitempty"`
}
