package services

import (
	"errors"
	"log"
	"time"

	"task-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionService is the ledger: it records at most one completion per
// (user, task, window) and accrues XP in the same transaction.
type CompletionService struct {
	DB           *gorm.DB
	Achievements *AchievementService
}

func NewCompletionService(db *gorm.DB, achievements *AchievementService) *CompletionService {
	return &CompletionService{DB: db, Achievements: achievements}
}

type CompletionResult struct {
	XPEarned int64 `json:"xpEarned"`
	TotalXP  int64 `json:"totalXP"`
}

// CompleteTask records a catalog task completion for the current window.
func (s *CompletionService) CompleteTask(userID, taskID string, now time.Time) (*CompletionResult, error) {
	var task models.Task
	if err := s.DB.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, storeErr("load task", err)
	}
	if !task.Active {
		return nil, ErrTaskInactive
	}
	return s.record(userID, models.TaskKindSystem, task.ID, task.Category, task.Period, task.XP, now)
}

// CompleteUserTask records a completion of the user's own recurring task,
// windowed by the task's repeat period.
func (s *CompletionService) CompleteUserTask(userID, taskID string, now time.Time) (*CompletionResult, error) {
	var task models.UserTask
	if err := s.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, storeErr("load user task", err)
	}
	if !task.Active {
		return nil, ErrTaskInactive
	}
	return s.record(userID, models.TaskKindUser, task.ID, task.Category, task.Repeat, task.XP, now)
}

// record inserts the completion and bumps the user's XP in one transaction.
// The unique (user, kind, task, window) index is the authoritative guard:
// an insert that conflicts affects zero rows, the transaction changes
// nothing, and the caller gets ErrAlreadyCompleted.
func (s *CompletionService) record(userID string, kind models.TaskKind, taskID, category string, period models.Period, xp int64, now time.Time) (*CompletionResult, error) {
	window, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	var result CompletionResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		completion := models.TaskCompletion{
			ID:          uuid.NewString(),
			UserID:      userID,
			TaskKind:    kind,
			TaskID:      taskID,
			WindowStart: window,
			Category:    category,
			XP:          xp,
			CompletedAt: now,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("total_xp", gorm.Expr("total_xp + ?", xp)).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("total_xp").Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		result = CompletionResult{XPEarned: xp, TotalXP: user.TotalXP}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			return nil, ErrAlreadyCompleted
		}
		return nil, storeErr("record completion", err)
	}

	s.bumpStreak(userID, now)

	// Re-evaluate achievements; an unlock pays out in its own transaction
	// and must not fail the completion that triggered it.
	if s.Achievements != nil {
		if err := s.Achievements.Evaluate(userID); err != nil {
			log.Printf("⚠️ achievement evaluation failed for user %s: %v", userID, err)
		}
	}
	return &result, nil
}

// CurrentStreak computes the user's streak from their completion history
// plus the stored longest-streak high-water mark.
func (s *CompletionService) CurrentStreak(userID string, now time.Time) (Streak, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Streak{}, ErrUserNotFound
		}
		return Streak{}, storeErr("load user", err)
	}

	var stamps []time.Time
	if err := s.DB.Model(&models.TaskCompletion{}).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Pluck("completed_at", &stamps).Error; err != nil {
		return Streak{}, storeErr("load completion history", err)
	}
	return ComputeStreak(stamps, now, user.LongestStreak), nil
}

// bumpStreak raises the persisted longest-streak high-water mark when the
// fresh current streak exceeds it.
func (s *CompletionService) bumpStreak(userID string, now time.Time) {
	streak, err := s.CurrentStreak(userID, now)
	if err != nil {
		log.Printf("⚠️ streak refresh failed for user %s: %v", userID, err)
		return
	}
	if err := s.DB.Model(&models.User{}).
		Where("id = ? AND longest_streak < ?", userID, streak.Current).
		UpdateColumn("longest_streak", streak.Current).Error; err != nil {
		log.Printf("⚠️ streak high-water update failed for user %s: %v", userID, err)
	}
}
