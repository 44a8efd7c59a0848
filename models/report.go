package models

import (
	"time"
)

type ReportReason string

const (
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonHarassment    ReportReason = "harassment"
	ReportReasonHateSpeech    ReportReason = "hate_speech"
	ReportReasonViolence      ReportReason = "violence"
	ReportReasonMisinfo       ReportReason = "misinformation"
	ReportReasonInappropriate ReportReason = "inappropriate_content"
	ReportReasonCopyright     ReportReason = "copyright"
	ReportReasonOther         ReportReason = "other"
)

type Report struct {
	ID             string       `json:"id" gorm:"primaryKey;size:191"`
	ReporterID     string       `json:"reporter_id" gorm:"not null;size:191;index"`
	ReportedUserID *string      `json:"reported_user_id" gorm:"size:191"`
	PostID         *string      `json:"post_id" gorm:"size:191"`
	CommentID      *string      `json:"comment_id" gorm:"size:191"`
	Reason         ReportReason `json:"reason" gorm:"not null;size:50"`
	Description    *string      `json:"description" gorm:"size:500"`
	CreatedAt      time.Time    `json:"created_at"`

	Reporter User `json:"reporter" gorm:"foreignKey:ReporterID"`
}
