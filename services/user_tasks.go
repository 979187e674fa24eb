package services

import (
	"fmt"
	"strings"
	"time"

	"task-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserTaskService struct {
	DB *gorm.DB
}

func NewUserTaskService(db *gorm.DB) *UserTaskService {
	return &UserTaskService{DB: db}
}

type CreateUserTaskInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Repeat      models.Period `json:"repeat"`
	Deadline    *time.Time    `json:"deadline"`
}

// Create validates and stores a user-authored recurring task. The XP value
// is fixed; users cannot mint their own reward sizes.
func (s *UserTaskService) Create(userID string, in CreateUserTaskInput) (*models.UserTask, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationErr("title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, validationErr("category is required")
	}
	switch in.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return nil, validationErr("priority must be low, medium or high")
	}
	if !in.Repeat.IsValid() {
		return nil, validationErr("repeat must be daily, weekly or monthly")
	}

	task := models.UserTask{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Repeat:      in.Repeat,
		Deadline:    in.Deadline,
		XP:          models.UserTaskXP,
		Active:      true,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return nil, storeErr("create user task", err)
	}
	return &task, nil
}

// UserTaskView is a user task plus its completed flag for the current
// window of the task's own repeat period.
type UserTaskView struct {
	models.UserTask
	Completed bool `json:"completed"`
}

// List returns the user's active tasks with per-window completed flags.
func (s *UserTaskService) List(userID string, now time.Time) ([]UserTaskView, error) {
	var tasks []models.UserTask
	if err := s.DB.Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, storeErr("list user tasks", err)
	}

	windows := make(map[models.Period]time.Time, len(models.AllPeriods))
	windowList := make([]time.Time, 0, len(models.AllPeriods))
	for _, p := range models.AllPeriods {
		w, err := PeriodStart(p, now)
		if err != nil {
			return nil, err
		}
		windows[p] = w
		windowList = append(windowList, w)
	}

	var done []models.TaskCompletion
	if err := s.DB.Where("user_id = ? AND task_kind = ? AND window_start IN ?",
		userID, models.TaskKindUser, windowList).
		Find(&done).Error; err != nil {
		return nil, storeErr("load completions", err)
	}
	// Key on task id + window so a daily completion that happens to share
	// its window start with the weekly window cannot cross-mark a task.
	completed := make(map[string]bool, len(done))
	key := func(taskID string, w time.Time) string {
		return fmt.Sprintf("%s@%d", taskID, w.Unix())
	}
	for _, c := range done {
		completed[key(c.TaskID, c.WindowStart)] = true
	}

	views := make([]UserTaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, UserTaskView{
			UserTask:  t,
			Completed: completed[key(t.ID, windows[t.Repeat])],
		})
	}
	return views, nil
}

// Deactivate soft-deletes a user task. Past completions keep resolving;
// only future completions are blocked.
func (s *UserTaskService) Deactivate(userID, taskID string) error {
	res := s.DB.Model(&models.UserTask{}).
		Where("id = ? AND user_id = ? AND active = ?", taskID, userID, true).
		Update("active", false)
	if res.Error != nil {
		return storeErr("deactivate user task", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
