package models

import "time"

// Period is the recurrence granularity of a task.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// IsValid reports whether p is one of the three known periods.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// AllPeriods lists the periods in regeneration order.
var AllPeriods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}

// Task is a curated catalog task, regenerated once per period window.
// Superseded rows are deactivated, never deleted, so every historical
// completion stays resolvable to its task.
type Task struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string `gorm:"index;not null" json:"code"` // slug of the template title
	Period      Period `gorm:"type:varchar(16);index;not null" json:"period"`
	Category    string `gorm:"type:varchar(32);index;not null" json:"category"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	XP          int64  `gorm:"not null" json:"xp"`
	Active      bool   `gorm:"index;default:true" json:"active"`

	// GeneratedFor is the window start the batch was generated for. A
	// regeneration request for the same window is a no-op, so repeated
	// scheduler runs cannot churn the active set.
	GeneratedFor time.Time `gorm:"index" json:"generated_for"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TaskTemplate seeds one catalog task per regeneration.
type TaskTemplate struct {
	Category    string
	Title       string
	Description string
	XP          int64
}

// Categories tracked by the stats endpoint: the union of every category the
// template catalog uses.
var Categories = []string{
	"finance",
	"relationships",
	"mindfulness",
	"entertainment",
	"meaning",
	"health",
	"goals",
}

// TaskTemplates is the curated catalog, keyed by period.
var TaskTemplates = map[Period][]TaskTemplate{
	PeriodDaily: {
		{Category: "finance", Title: "Review your spending", Description: "Look over what you spent during the last day", XP: 50},
		{Category: "relationships", Title: "Call someone close", Description: "Spend time talking with family or friends", XP: 30},
		{Category: "mindfulness", Title: "Meditation", Description: "15 minutes of mindful practice", XP: 40},
		{Category: "meaning", Title: "Daily reflection", Description: "Write down three takeaways from your day", XP: 35},
		{Category: "health", Title: "Take a walk", Description: "Go for a 30-minute walk", XP: 45},
	},
	PeriodWeekly: {
		{Category: "finance", Title: "Weekly finance review", Description: "Go through the week's spending and plan the next one", XP: 100},
		{Category: "relationships", Title: "Meet your friends", Description: "Organize a get-together with close friends", XP: 80},
		{Category: "mindfulness", Title: "Mindfulness hour", Description: "Dedicate an hour to meditation and reflection", XP: 90},
		{Category: "health", Title: "Workout week", Description: "Complete three workouts", XP: 120},
	},
	PeriodMonthly: {
		{Category: "finance", Title: "Monthly finance report", Description: "Close out the month and adjust your financial goals", XP: 200},
		{Category: "goals", Title: "Goal check-in", Description: "Review progress on this month's goals", XP: 200},
		{Category: "health", Title: "Health checkup", Description: "Schedule or attend a medical checkup", XP: 150},
		{Category: "entertainment", Title: "Try something new", Description: "Visit an event or a place you have never been to", XP: 120},
	},
}
