package services

import (
	"path/filepath"
	"testing"
	"time"

	"task-quest-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testNow is a fixed Wednesday afternoon; the surrounding week starts on
// Sunday 2026-01-04 and the month on 2026-01-01.
var testNow = time.Date(2026, time.January, 7, 15, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.UserTask{},
		&models.TaskCompletion{},
		&models.Achievement{},
		&models.UserAchievement{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, telegramID int64, xp int64) *models.User {
	t.Helper()
	user := models.User{
		ID:         uuid.NewString(),
		TelegramID: telegramID,
		FirstName:  "Tester",
		TotalXP:    xp,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCatalogTask(t *testing.T, db *gorm.DB, period models.Period, category string, xp int64) *models.Task {
	t.Helper()
	window, err := PeriodStart(period, testNow)
	require.NoError(t, err)
	task := models.Task{
		ID:           uuid.NewString(),
		Code:         "test-task",
		Period:       period,
		Category:     category,
		Title:        "Test task",
		XP:           xp,
		Active:       true,
		GeneratedFor: window,
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}

func seedDef(t *testing.T, db *gorm.DB, def models.Achievement) *models.Achievement {
	t.Helper()
	def.ID = uuid.NewString()
	if def.Rarity == "" {
		def.Rarity = models.RarityCommon
	}
	require.NoError(t, db.Create(&def).Error)
	return &def
}

func insertCompletion(t *testing.T, db *gorm.DB, userID, category string, completedAt time.Time) {
	t.Helper()
	window, err := PeriodStart(models.PeriodDaily, completedAt)
	require.NoError(t, err)
	c := models.TaskCompletion{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskKind:    models.TaskKindSystem,
		TaskID:      uuid.NewString(),
		WindowStart: window,
		Category:    category,
		XP:          10,
		CompletedAt: completedAt,
	}
	require.NoError(t, db.Create(&c).Error)
}
