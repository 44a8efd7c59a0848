package models

import (
	"time"
)

// Hashtag is a read-mostly projection. PostCount is not maintained
// transactionally with post writes; the recount job refreshes it.
type Hashtag struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	PostCount int       `json:"post_count" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
