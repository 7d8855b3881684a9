// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Challenge difficulty levels.
const (
	DifficultyBeginner = "beginner"
	DifficultyEasy     = "easy"
	DifficultyMedium   = "medium"
	DifficultyHard     = "hard"
	DifficultyExtreme  = "extreme"
)

// ValidDifficulty reports whether s names a known difficulty level.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme:
		return true
	}
	return false
}

// Challenge represents a typing/coding challenge users solve and discuss.
type Challenge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Prompt      string `gorm:"type:text;not null" json:"prompt"`
	Difficulty  string `gorm:"not null;default:'easy'" json:"difficulty"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"user"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Solution is a user's submitted answer to a challenge. Solutions are the
// second kind of comment root besides the challenge itself.
type Solution struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Code        string         `gorm:"type:text;not null" json:"code"`
	ChallengeID uint           `gorm:"not null;index" json:"challenge_id"`
	Challenge   Challenge      `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
