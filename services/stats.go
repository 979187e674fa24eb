package services

import (
	"time"

	"task-quest-system/models"

	"gorm.io/gorm"
)

// StatsService answers the profile stats query with aggregate counts
// instead of loading the user's completion graph into memory.
type StatsService struct {
	DB          *gorm.DB
	Completions *CompletionService
}

func NewStatsService(db *gorm.DB, completions *CompletionService) *StatsService {
	return &StatsService{DB: db, Completions: completions}
}

type TaskCounts struct {
	Daily   int64 `json:"daily"`
	Weekly  int64 `json:"weekly"`
	Monthly int64 `json:"monthly"`
	Total   int64 `json:"total"`
}

type CategoryStat struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

type AchievementCounts struct {
	Unlocked int64 `json:"unlocked"`
	Total    int64 `json:"total"`
}

type UserStats struct {
	TasksCompleted TaskCounts              `json:"tasksCompleted"`
	Categories     map[string]CategoryStat `json:"categories"`
	Streak         Streak                  `json:"streak"`
	Achievements   AchievementCounts       `json:"achievements"`
}

// GetStats aggregates the user's completion counts per current window and
// category, the streak, and the achievement tally.
func (s *StatsService) GetStats(userID string, now time.Time) (*UserStats, error) {
	stats := &UserStats{Categories: make(map[string]CategoryStat, len(models.Categories))}

	for period, dst := range map[models.Period]*int64{
		models.PeriodDaily:   &stats.TasksCompleted.Daily,
		models.PeriodWeekly:  &stats.TasksCompleted.Weekly,
		models.PeriodMonthly: &stats.TasksCompleted.Monthly,
	} {
		window, err := PeriodStart(period, now)
		if err != nil {
			return nil, err
		}
		if err := s.DB.Model(&models.TaskCompletion{}).
			Where("user_id = ? AND completed_at >= ?", userID, window).
			Count(dst).Error; err != nil {
			return nil, storeErr("count period completions", err)
		}
	}
	if err := s.DB.Model(&models.TaskCompletion{}).
		Where("user_id = ?", userID).
		Count(&stats.TasksCompleted.Total).Error; err != nil {
		return nil, storeErr("count completions", err)
	}

	for _, category := range models.Categories {
		var cs CategoryStat
		if err := s.DB.Model(&models.TaskCompletion{}).
			Where("user_id = ? AND category = ?", userID, category).
			Count(&cs.Completed).Error; err != nil {
			return nil, storeErr("count category completions", err)
		}
		if err := s.DB.Model(&models.Task{}).
			Where("category = ? AND active = ?", category, true).
			Count(&cs.Total).Error; err != nil {
			return nil, storeErr("count category tasks", err)
		}
		stats.Categories[category] = cs
	}

	streak, err := s.Completions.CurrentStreak(userID, now)
	if err != nil {
		return nil, err
	}
	stats.Streak = streak

	if err := s.DB.Model(&models.UserAchievement{}).
		Where("user_id = ? AND unlocked_at IS NOT NULL", userID).
		Count(&stats.Achievements.Unlocked).Error; err != nil {
		return nil, storeErr("count unlocked achievements", err)
	}
	if err := s.DB.Model(&models.Achievement{}).
		Count(&stats.Achievements.Total).Error; err != nil {
		return nil, storeErr("count achievements", err)
	}

	return stats, nil
}
