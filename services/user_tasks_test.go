package services

import (
	"testing"

	"task-quest-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserTaskValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserTaskService(db)
	user := createTestUser(t, db, 5001, 0)

	cases := []struct {
		name string
		in   CreateUserTaskInput
	}{
		{"empty title", CreateUserTaskInput{
			Category: "goals", Priority: models.PriorityLow, Repeat: models.PeriodDaily,
		}},
		{"empty category", CreateUserTaskInput{
			Title: "Read", Priority: models.PriorityLow, Repeat: models.PeriodDaily,
		}},
		{"bad priority", CreateUserTaskInput{
			Title: "Read", Category: "goals", Priority: "urgent", Repeat: models.PeriodDaily,
		}},
		{"bad repeat", CreateUserTaskInput{
			Title: "Read", Category: "goals", Priority: models.PriorityLow, Repeat: "yearly",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(user.ID, tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateUserTaskFixedXP(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserTaskService(db)
	user := createTestUser(t, db, 5002, 0)

	task, err := svc.Create(user.ID, CreateUserTaskInput{
		Title:    "  Read 20 pages  ",
		Category: "goals",
		Priority: models.PriorityHigh,
		Repeat:   models.PeriodDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, "Read 20 pages", task.Title)
	assert.Equal(t, int64(models.UserTaskXP), task.XP)
	assert.True(t, task.Active)
}

func TestListUserTasksCompletedFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserTaskService(db)
	completions := NewCompletionService(db, nil)
	user := createTestUser(t, db, 5003, 0)

	daily, err := svc.Create(user.ID, CreateUserTaskInput{
		Title: "Stretch", Category: "health",
		Priority: models.PriorityLow, Repeat: models.PeriodDaily,
	})
	require.NoError(t, err)
	weekly, err := svc.Create(user.ID, CreateUserTaskInput{
		Title: "Plan the week", Category: "goals",
		Priority: models.PriorityMedium, Repeat: models.PeriodWeekly,
	})
	require.NoError(t, err)

	_, err = completions.CompleteUserTask(user.ID, daily.ID, testNow)
	require.NoError(t, err)

	views, err := svc.List(user.ID, testNow)
	require.NoError(t, err)
	require.Len(t, views, 2)
	byID := map[string]UserTaskView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.True(t, byID[daily.ID].Completed)
	assert.False(t, byID[weekly.ID].Completed)

	// Tomorrow the daily flag resets; the weekly window is still open but
	// the task was never completed in it.
	views, err = svc.List(user.ID, testNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	for _, v := range views {
		assert.False(t, v.Completed)
	}
}

func TestDeactivateUserTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserTaskService(db)
	completions := NewCompletionService(db, nil)
	user := createTestUser(t, db, 5004, 0)

	task, err := svc.Create(user.ID, CreateUserTaskInput{
		Title: "Old habit", Category: "health",
		Priority: models.PriorityLow, Repeat: models.PeriodDaily,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(user.ID, task.ID))
	assert.ErrorIs(t, svc.Deactivate(user.ID, task.ID), ErrTaskNotFound)

	_, err = completions.CompleteUserTask(user.ID, task.ID, testNow)
	assert.ErrorIs(t, err, ErrTaskInactive)

	views, err := svc.List(user.ID, testNow)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeactivateOtherUsersTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserTaskService(db)
	owner := createTestUser(t, db, 5005, 0)
	intruder := createTestUser(t, db, 5006, 0)

	task, err := svc.Create(owner.ID, CreateUserTaskInput{
		Title: "Mine", Category: "goals",
		Priority: models.PriorityLow, Repeat: models.PeriodDaily,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Deactivate(intruder.ID, task.ID), ErrTaskNotFound)
}
