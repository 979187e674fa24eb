package models

import "time"

// UserTaskXP is the fixed reward for user-authored tasks.
const UserTaskXP = 10

// User task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// UserTask is a recurring task authored by a single user. It shares the
// catalog task shape plus priority and an optional deadline. Removal is a
// soft delete via the Active flag so past completions keep resolving.
type UserTask struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string     `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Category    string     `gorm:"type:varchar(32);not null" json:"category"`
	Priority    string     `gorm:"type:varchar(16);not null" json:"priority"`
	Repeat      Period     `gorm:"type:varchar(16);not null" json:"repeat"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	XP          int64      `gorm:"not null" json:"xp"`
	Active      bool       `gorm:"index;default:true" json:"active"`

	Timestamps
}
