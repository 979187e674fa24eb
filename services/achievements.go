package services

import (
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"task-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementService recomputes per-user metrics, advances progress
// monotonically and unlocks rewards at most once per (user, achievement).
type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// SeedAchievements inserts any shipped catalog definitions that are not
// present yet, matched by code. Existing rows are left untouched.
func SeedAchievements(db *gorm.DB) error {
	for _, def := range models.AchievementSeeds {
		def.ID = uuid.NewString()
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&def)
		if res.Error != nil {
			return storeErr("seed achievements", res.Error)
		}
	}
	return nil
}

// Evaluate recomputes every achievement's progress for the user. Stored
// progress never decreases; reaching the requirement unlocks and pays the
// reward exactly once, no matter how often or concurrently this runs.
func (s *AchievementService) Evaluate(userID string) error {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return storeErr("load user", err)
	}

	var defs []models.Achievement
	if err := s.DB.Order("created_at ASC").Find(&defs).Error; err != nil {
		return storeErr("load achievements", err)
	}

	var taskCount int64
	if err := s.DB.Model(&models.TaskCompletion{}).
		Where("user_id = ?", userID).
		Count(&taskCount).Error; err != nil {
		return storeErr("count completions", err)
	}
	categoryCounts := map[string]int64{}

	var rows []models.UserAchievement
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return storeErr("load achievement progress", err)
	}
	byAchievement := make(map[string]models.UserAchievement, len(rows))
	for _, r := range rows {
		byAchievement[r.AchievementID] = r
	}

	for _, def := range defs {
		progress, err := s.progressFor(def, &user, taskCount, categoryCounts)
		if err != nil {
			return err
		}

		row, tracked := byAchievement[def.ID]
		switch {
		case tracked && row.UnlockedAt != nil:
			// Already unlocked: keep progress monotonic, never pay again.
			if progress > row.Progress {
				if err := s.raiseProgress(row.ID, progress); err != nil {
					return err
				}
			}
		case progress >= def.Requirement:
			if err := s.unlock(userID, def, progress, tracked, row.ID); err != nil {
				return err
			}
		case tracked:
			if progress > row.Progress {
				if err := s.raiseProgress(row.ID, progress); err != nil {
					return err
				}
			}
		default:
			row = models.UserAchievement{
				ID:            uuid.NewString(),
				UserID:        userID,
				AchievementID: def.ID,
				Progress:      progress,
			}
			if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&row).Error; err != nil {
				return storeErr("track achievement progress", err)
			}
		}
	}
	return nil
}

func (s *AchievementService) progressFor(def models.Achievement, user *models.User, taskCount int64, categoryCounts map[string]int64) (int64, error) {
	switch def.Metric {
	case models.MetricTaskCount:
		return taskCount, nil
	case models.MetricXPTotal:
		return user.TotalXP, nil
	case models.MetricCategoryCount:
		if n, ok := categoryCounts[def.Category]; ok {
			return n, nil
		}
		var n int64
		if err := s.DB.Model(&models.TaskCompletion{}).
			Where("user_id = ? AND category = ?", user.ID, def.Category).
			Count(&n).Error; err != nil {
			return 0, storeErr("count category completions", err)
		}
		categoryCounts[def.Category] = n
		return n, nil
	default:
		return 0, validationErr("unknown achievement metric " + string(def.Metric))
	}
}

// raiseProgress stores a higher progress value; the WHERE guard keeps
// progress monotonic under concurrent evaluations.
func (s *AchievementService) raiseProgress(rowID string, progress int64) error {
	if err := s.DB.Model(&models.UserAchievement{}).
		Where("id = ? AND progress < ?", rowID, progress).
		UpdateColumn("progress", progress).Error; err != nil {
		return storeErr("update achievement progress", err)
	}
	return nil
}

// unlock flips the row to unlocked and pays the reward in one transaction.
// The guard is conditional either way: an insert that hits the unique
// (user, achievement) index, or an update filtered on unlocked_at IS NULL.
// Zero affected rows means a concurrent evaluation won the race and already
// paid, so this one pays nothing.
func (s *AchievementService) unlock(userID string, def models.Achievement, progress int64, tracked bool, rowID string) error {
	now := time.Now().UTC()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		if tracked {
			res = tx.Model(&models.UserAchievement{}).
				Where("id = ? AND unlocked_at IS NULL", rowID).
				Updates(map[string]interface{}{
					"progress":    progress,
					"unlocked_at": now,
				})
		} else {
			row := models.UserAchievement{
				ID:            uuid.NewString(),
				UserID:        userID,
				AchievementID: def.ID,
				Progress:      progress,
				UnlockedAt:    &now,
			}
			res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("total_xp", gorm.Expr("total_xp + ?", def.XPReward)).Error; err != nil {
			return err
		}
		log.Printf("🏆 Achievement unlocked: %s → user %s (+%d XP)", def.Code, userID, def.XPReward)
		return nil
	})
	if err != nil {
		return storeErr("unlock achievement", err)
	}
	return nil
}

// AchievementView is one definition plus the user's progress toward it.
type AchievementView struct {
	models.Achievement
	Unlocked           bool       `json:"unlocked"`
	Progress           int64      `json:"progress"`
	ProgressPercentage int        `json:"progressPercentage"`
	UnlockedAt         *time.Time `json:"unlockedAt,omitempty"`
}

// AchievementStats summarizes the user's standing for the achievements tab.
type AchievementStats struct {
	TotalXP              int64 `json:"totalXP"`
	AchievementsUnlocked int   `json:"achievementsUnlocked"`
	TotalAchievements    int   `json:"totalAchievements"`
}

// GetProgress refreshes the user's progress via Evaluate, then returns
// every definition with unlocked state and a capped percentage.
func (s *AchievementService) GetProgress(userID string) ([]AchievementView, *AchievementStats, error) {
	if err := s.Evaluate(userID); err != nil {
		return nil, nil, err
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, nil, storeErr("load user", err)
	}
	var defs []models.Achievement
	if err := s.DB.Order("created_at ASC").Find(&defs).Error; err != nil {
		return nil, nil, storeErr("load achievements", err)
	}
	var rows []models.UserAchievement
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, nil, storeErr("load achievement progress", err)
	}
	byAchievement := make(map[string]models.UserAchievement, len(rows))
	for _, r := range rows {
		byAchievement[r.AchievementID] = r
	}

	views := make([]AchievementView, 0, len(defs))
	unlocked := 0
	for _, def := range defs {
		row := byAchievement[def.ID]
		v := AchievementView{
			Achievement: def,
			Unlocked:    row.UnlockedAt != nil,
			Progress:    row.Progress,
			UnlockedAt:  row.UnlockedAt,
		}
		if def.Requirement > 0 {
			pct := int(math.Round(float64(row.Progress) / float64(def.Requirement) * 100))
			if pct > 100 {
				pct = 100
			}
			v.ProgressPercentage = pct
		}
		if v.Unlocked {
			unlocked++
		}
		views = append(views, v)
	}

	stats := &AchievementStats{
		TotalXP:              user.TotalXP,
		AchievementsUnlocked: unlocked,
		TotalAchievements:    len(defs),
	}
	return views, stats, nil
}

// LeaderboardEntry is one row of the XP top list.
type LeaderboardEntry struct {
	Position          int                 `json:"position"`
	Name              string              `json:"name"`
	XP                int64               `json:"xp"`
	AchievementsCount int                 `json:"achievementsCount"`
	TopAchievement    *models.Achievement `json:"topAchievement"`
}

// Leaderboard returns the top N users by XP. Ties are broken by user id so
// the listing is deterministic; tied users still share a PositionOf value,
// which is intentional display semantics.
func (s *AchievementService) Leaderboard(topN int) ([]LeaderboardEntry, error) {
	var users []models.User
	if err := s.DB.Order("total_xp DESC").Order("id ASC").
		Limit(topN).
		Find(&users).Error; err != nil {
		return nil, storeErr("load leaderboard", err)
	}

	var defs []models.Achievement
	if err := s.DB.Find(&defs).Error; err != nil {
		return nil, storeErr("load achievements", err)
	}
	defByID := make(map[string]models.Achievement, len(defs))
	for _, d := range defs {
		defByID[d.ID] = d
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		var unlockedRows []models.UserAchievement
		if err := s.DB.Where("user_id = ? AND unlocked_at IS NOT NULL", u.ID).
			Find(&unlockedRows).Error; err != nil {
			return nil, storeErr("load unlocked achievements", err)
		}
		entries = append(entries, LeaderboardEntry{
			Position:          i + 1,
			Name:              u.DisplayName(),
			XP:                u.TotalXP,
			AchievementsCount: len(unlockedRows),
			TopAchievement:    topAchievement(unlockedRows, defByID),
		})
	}
	return entries, nil
}

// topAchievement picks the highest-rarity unlock; equal rarity goes to the
// earliest unlock instant.
func topAchievement(rows []models.UserAchievement, defByID map[string]models.Achievement) *models.Achievement {
	if len(rows) == 0 {
		return nil
	}
	sorted := make([]models.UserAchievement, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		wi := models.RarityWeight[defByID[sorted[i].AchievementID].Rarity]
		wj := models.RarityWeight[defByID[sorted[j].AchievementID].Rarity]
		if wi != wj {
			return wi > wj
		}
		return sorted[i].UnlockedAt.Before(*sorted[j].UnlockedAt)
	})
	def, ok := defByID[sorted[0].AchievementID]
	if !ok {
		return nil
	}
	return &def
}

// PositionOf counts users with strictly more XP. Users tied on XP all get
// the same position.
func (s *AchievementService) PositionOf(userID string) (int, *models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, storeErr("load user", err)
	}

	var greater int64
	if err := s.DB.Model(&models.User{}).
		Where("total_xp > ?", user.TotalXP).
		Count(&greater).Error; err != nil {
		return 0, nil, storeErr("count higher ranks", err)
	}
	return int(greater) + 1, &user, nil
}
