// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment root types. A comment thread hangs off either a challenge or a
// solution; the (RootType, RootID) pair identifies the thread.
const (
	RootTypeChallenge = "challenge"
	RootTypeSolution  = "solution"
)

// Comment represents a comment on a challenge or solution. Top-level comments
// have a nil ParentID; replies carry their parent's ID and inherit the
// parent's root. Threads are one level deep: replies cannot be replied to.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	RootType string `gorm:"size:20;not null;index:idx_comments_root" json:"root_type"`
	RootID   uint   `gorm:"not null;index:idx_comments_root" json:"root_id"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int            `gorm:"->" json:"reply_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// PaginatedComments is one page of a comment list plus the totals the client
// needs to drive pagination.
type PaginatedComments struct {
	Comments   []*Comment `json:"comments"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	TotalCount int64      `json:"total_count"`
}

// ValidRootType reports whether s names a known comment root type.
func ValidRootType(s string) bool {
	return s == RootTypeChallenge || s == RootTypeSolution
}
