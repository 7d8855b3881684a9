// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Report statuses.
const (
	ReportStatusOpen      = "open"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is an abuse report filed by a user against a comment. A report must
// carry at least one category flag or a non-empty free-text reason, and a
// reporter may have at most one open report per comment.
type Report struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CommentID  uint   `gorm:"not null;index" json:"comment_id"`
	Comment    Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	ReporterID uint   `gorm:"not null;index" json:"reporter_id"`
	Reporter   User   `gorm:"foreignKey:ReporterID" json:"reporter"`
	Spam       bool   `json:"spam"`
	Threat     bool   `json:"threat"`
	HateSpeech bool   `json:"hate_speech"`
	Bullying   bool   `json:"bullying"`
	Text       string `gorm:"size:500" json:"text"`
	Status     string `gorm:"size:20;not null;default:'open';index" json:"status"`
	// Resolution fields, set by an admin
	ResolvedByUserID *uint          `json:"resolved_by_user_id,omitempty"`
	ResolvedByUser   *User          `gorm:"foreignKey:ResolvedByUserID" json:"resolved_by_user,omitempty"`
	ResolvedAt       *time.Time     `json:"resolved_at,omitempty"`
	ResolutionNote   string         `gorm:"size:500" json:"resolution_note"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasCategory reports whether at least one category flag is set.
func (r *Report) HasCategory() bool {
	return r.Spam || r.Threat || r.HateSpeech || r.Bullying
}
