package services

import (
	"time"

	"task-quest-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TaskCatalogService struct {
	DB *gorm.DB
}

func NewTaskCatalogService(db *gorm.DB) *TaskCatalogService {
	return &TaskCatalogService{DB: db}
}

// Regenerate replaces the active batch of period tasks with one task per
// template, stamped with the window-start marker. If the currently active
// batch already carries the requested window's marker the call returns that
// batch unchanged — repeated scheduler runs inside one window are no-ops.
// Superseded tasks are deactivated, never deleted.
func (s *TaskCatalogService) Regenerate(period models.Period, templates []models.TaskTemplate, now time.Time) ([]models.Task, error) {
	window, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	var batch []models.Task
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var current []models.Task
		if err := tx.Where("period = ? AND active = ?", period, true).
			Order("created_at ASC").
			Find(&current).Error; err != nil {
			return err
		}
		if len(current) > 0 && current[0].GeneratedFor.Equal(window) {
			batch = current
			return nil
		}

		if err := tx.Model(&models.Task{}).
			Where("period = ? AND active = ?", period, true).
			Update("active", false).Error; err != nil {
			return err
		}

		for _, tpl := range templates {
			task := models.Task{
				ID:           uuid.NewString(),
				Code:         slug.Make(tpl.Title),
				Period:       period,
				Category:     tpl.Category,
				Title:        tpl.Title,
				Description:  tpl.Description,
				XP:           tpl.XP,
				Active:       true,
				GeneratedFor: window,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			batch = append(batch, task)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("regenerate tasks", err)
	}
	return batch, nil
}

// GenerateAll regenerates every period's batch from the shipped templates.
// The window markers make this safe to run at any time: weekly and monthly
// batches only roll over when their window actually changes.
func (s *TaskCatalogService) GenerateAll(now time.Time) error {
	for _, period := range models.AllPeriods {
		if _, err := s.Regenerate(period, models.TaskTemplates[period], now); err != nil {
			return err
		}
	}
	return nil
}

// TaskView is the task shape the mini-app renders.
type TaskView struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XP          int64  `json:"xp"`
	Completed   bool   `json:"completed"`
}

// ListTasks returns the active batch for a period with a per-user completed
// flag for the current window. Completions referencing a superseded batch
// carry different task ids, so they never mark the new batch as done.
func (s *TaskCatalogService) ListTasks(period models.Period, userID string, now time.Time) ([]TaskView, error) {
	window, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.DB.Where("period = ? AND active = ?", period, true).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, storeErr("list tasks", err)
	}

	var done []models.TaskCompletion
	if err := s.DB.Where("user_id = ? AND task_kind = ? AND window_start = ?",
		userID, models.TaskKindSystem, window).
		Find(&done).Error; err != nil {
		return nil, storeErr("load completions", err)
	}
	completed := make(map[string]bool, len(done))
	for _, c := range done {
		completed[c.TaskID] = true
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{
			ID:          t.ID,
			Category:    t.Category,
			Title:       t.Title,
			Description: t.Description,
			XP:          t.XP,
			Completed:   completed[t.ID],
		})
	}
	return views, nil
}
