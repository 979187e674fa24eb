package models

import (
	"time"

	"gorm.io/gorm"
)

// XPPerLevel is the flat XP cost of one level: level = totalXP/1000 + 1.
const XPPerLevel = 1000

// User holds the Telegram identity verified upstream by the gateway plus
// the progression counters owned by this service. TotalXP only ever grows,
// and always inside the same transaction as the completion or unlock that
// earned it.
type User struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	TelegramID int64  `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`

	TotalXP int64 `json:"total_xp" gorm:"default:0"`

	// LongestStreak is a durable high-water mark; recomputing it from
	// history alone would collapse to the current streak.
	LongestStreak int `json:"longest_streak" gorm:"default:0"`

	Timestamps
}

// Level derives the current level from TotalXP.
func (u *User) Level() int {
	return int(u.TotalXP/XPPerLevel) + 1
}

// NextLevelXP returns the XP threshold for the next level.
func (u *User) NextLevelXP() int64 {
	return int64(u.Level()) * XPPerLevel
}

// DisplayName picks the friendliest non-empty name, the way the mini-app
// renders leaderboard entries.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "Player"
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
