package models

import (
	"time"
)

type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:191"`
	Name           string    `json:"name" gorm:"not null;size:255"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password       string    `json:"-" gorm:"not null;size:255"`
	EmailVerified  bool      `json:"email_verified" gorm:"default:false"`
	Avatar         *string   `json:"avatar" gorm:"size:500"`
	Bio            *string   `json:"bio" gorm:"size:160"`
	Location       *string   `json:"location" gorm:"size:50"`
	Website        *string   `json:"website" gorm:"size:500"`
	IsVerified     bool      `json:"is_verified" gorm:"default:false"`
	FollowerCount  int       `json:"follower_count" gorm:"default:0"`
	FollowingCount int       `json:"following_count" gorm:"default:0"`
	PostCount      int       `json:"post_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"not null;size:191;uniqueIndex:uk_follows_pair"`
	FollowingID string    `json:"following_id" gorm:"not null;size:191;uniqueIndex:uk_follows_pair"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"follower" gorm:"foreignKey:FollowerID"`
	Following User `json:"following" gorm:"foreignKey:FollowingID"`
}

// AuthorSummary is the safe author projection embedded in post responses.
// Never carries the email.
type AuthorSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	Avatar     *string `json:"avatar"`
	IsVerified bool    `json:"is_verified"`
}

// UserProfile is the public profile view. Email is set only when the viewer
// is the profile owner.
type UserProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Avatar         *string   `json:"avatar"`
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	Website        *string   `json:"website"`
	IsVerified     bool      `json:"is_verified"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	PostCount      int       `json:"post_count"`
	IsFollowing    bool      `json:"is_following"`
	CreatedAt      time.Time `json:"created_at"`
}

// SuggestedUser is the trending sidebar projection.
type SuggestedUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Avatar        *string `json:"avatar"`
	Bio           *string `json:"bio"`
	IsVerified    bool    `json:"is_verified"`
	FollowerCount int     `json:"follower_count"`
	IsFollowing   bool    `json:"is_following"`
}

func (u *User) ToAuthorSummary() AuthorSummary {
	return AuthorSummary{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Avatar:     u.Avatar,
		IsVerified: u.IsVerified,
	}
}

func (u *User) ToProfile(viewerID string, isFollowing bool) UserProfile {
	profile := UserProfile{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Avatar:         u.Avatar,
		Bio:            u.Bio,
		Location:       u.Location,
		Website:        u.Website,
		IsVerified:     u.IsVerified,
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
		PostCount:      u.PostCount,
		IsFollowing:    isFollowing,
		CreatedAt:      u.CreatedAt,
	}
	if viewerID == u.ID {
		profile.Email = u.Email
	}
	return profile
}

func (u *User) ToSuggested(isFollowing bool) SuggestedUser {
	return SuggestedUser{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Avatar:        u.Avatar,
		Bio:           u.Bio,
		IsVerified:    u.IsVerified,
		FollowerCount: u.FollowerCount,
		IsFollowing:   isFollowing,
	}
}
