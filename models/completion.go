package models

import "time"

// TaskKind tells which catalog a completion's task reference points into.
type TaskKind string

const (
	TaskKindSystem TaskKind = "system"
	TaskKindUser   TaskKind = "user"
)

// TaskCompletion records one completion of one task inside one period
// window. Category and XP are denormalized so stats and achievement metrics
// stay plain aggregate queries instead of joins through two task tables.
//
// The composite unique index is the authoritative idempotency guard: a
// second insert for the same (user, kind, task, window) conflicts, and the
// ledger reports that as already completed rather than as a failure.
type TaskCompletion struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"uniqueIndex:idx_completion_window;not null" json:"user_id"`
	TaskKind    TaskKind  `gorm:"uniqueIndex:idx_completion_window;type:varchar(16);not null" json:"task_kind"`
	TaskID      string    `gorm:"uniqueIndex:idx_completion_window;not null" json:"task_id"`
	WindowStart time.Time `gorm:"uniqueIndex:idx_completion_window;not null" json:"window_start"`
	Category    string    `gorm:"type:varchar(32);index;not null" json:"category"`
	XP          int64     `gorm:"not null" json:"xp"`
	CompletedAt time.Time `gorm:"index;not null" json:"completed_at"`
}
