package services

import (
	"testing"
	"time"

	"task-quest-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteTaskAwardsXP(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	user := createTestUser(t, db, 2001, 0)
	task := createCatalogTask(t, db, models.PeriodDaily, "health", 30)

	res, err := svc.CompleteTask(user.ID, task.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(30), res.XPEarned)
	assert.Equal(t, int64(30), res.TotalXP)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, int64(30), stored.TotalXP)
}

func TestCompleteTaskTwiceInWindowIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	user := createTestUser(t, db, 2002, 0)
	task := createCatalogTask(t, db, models.PeriodDaily, "health", 30)

	_, err := svc.CompleteTask(user.ID, task.ID, testNow)
	require.NoError(t, err)

	_, err = svc.CompleteTask(user.ID, task.ID, testNow.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// The duplicate must not touch XP or the ledger.
	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, int64(30), stored.TotalXP)

	var count int64
	require.NoError(t, db.Model(&models.TaskCompletion{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteTaskNewWindowAllowsRepeat(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	user := createTestUser(t, db, 2003, 0)
	task := createCatalogTask(t, db, models.PeriodDaily, "health", 30)

	_, err := svc.CompleteTask(user.ID, task.ID, testNow)
	require.NoError(t, err)

	res, err := svc.CompleteTask(user.ID, task.ID, testNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(60), res.TotalXP)
}

func TestCompleteInactiveTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	user := createTestUser(t, db, 2004, 0)
	task := createCatalogTask(t, db, models.PeriodDaily, "health", 30)
	require.NoError(t, db.Model(task).Update("active", false).Error)

	_, err := svc.CompleteTask(user.ID, task.ID, testNow)
	assert.ErrorIs(t, err, ErrTaskInactive)
}

func TestCompleteUnknownTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	user := createTestUser(t, db, 2005, 0)

	_, err := svc.CompleteTask(user.ID, "no-such-task", testNow)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCompleteUserTaskWindowedByRepeat(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	userTasks := NewUserTaskService(db)
	user := createTestUser(t, db, 2006, 0)

	task, err := userTasks.Create(user.ID, CreateUserTaskInput{
		Title:    "Weekly review",
		Category: "goals",
		Priority: models.PriorityMedium,
		Repeat:   models.PeriodWeekly,
	})
	require.NoError(t, err)

	_, err = svc.CompleteUserTask(user.ID, task.ID, testNow)
	require.NoError(t, err)

	// Saturday is still the same week.
	_, err = svc.CompleteUserTask(user.ID, task.ID, testNow.AddDate(0, 0, 3))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// The following Sunday opens a fresh window.
	res, err := svc.CompleteUserTask(user.ID, task.ID, testNow.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(2*models.UserTaskXP), res.TotalXP)
}

func TestCompleteUserTaskOwnedByOtherUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	userTasks := NewUserTaskService(db)
	owner := createTestUser(t, db, 2007, 0)
	intruder := createTestUser(t, db, 2008, 0)

	task, err := userTasks.Create(owner.ID, CreateUserTaskInput{
		Title:    "Private task",
		Category: "goals",
		Priority: models.PriorityLow,
		Repeat:   models.PeriodDaily,
	})
	require.NoError(t, err)

	_, err = svc.CompleteUserTask(intruder.ID, task.ID, testNow)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCompletionRaisesLongestStreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)
	user := createTestUser(t, db, 2009, 0)
	task := createCatalogTask(t, db, models.PeriodDaily, "health", 30)

	insertCompletion(t, db, user.ID, "health", testNow.AddDate(0, 0, -1))
	_, err := svc.CompleteTask(user.ID, task.ID, testNow)
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, 2, stored.LongestStreak)

	streak, err := svc.CurrentStreak(user.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 2, streak.Longest)
}

func TestCurrentStreakUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, nil)

	_, err := svc.CurrentStreak("no-such-user", testNow)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
