package models

import "time"

// Metric selects how achievement progress is computed. The switch over
// these values in the achievements service is the single place a new metric
// has to be handled.
type Metric string

const (
	MetricTaskCount     Metric = "task_count"
	MetricXPTotal       Metric = "xp_total"
	MetricCategoryCount Metric = "category_count"
)

// Rarity tiers, lowest to highest.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// RarityWeight orders rarities for top-achievement selection.
var RarityWeight = map[string]int{
	RarityCommon:    1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
}

// Achievement is a shared, system-owned definition: it unlocks once the
// tracked metric first reaches Requirement, paying XPReward exactly once.
type Achievement struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Metric      Metric    `gorm:"type:varchar(32);not null" json:"metric"`
	Category    string    `gorm:"type:varchar(32)" json:"category,omitempty"` // only for category_count
	Rarity      string    `gorm:"type:varchar(16);default:'common'" json:"rarity"`
	Requirement int64     `gorm:"not null" json:"requirement"`
	XPReward    int64     `gorm:"not null" json:"xp_reward"`
	Icon        string    `json:"icon"`
	IconURL     string    `gorm:"type:text" json:"icon_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Progress never decreases and UnlockedAt is set at most once; the unique
// index keeps a concurrent duplicate unlock from paying twice.
type UserAchievement struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string     `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementID string     `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievement_id"`
	Progress      int64      `gorm:"default:0" json:"progress"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// AchievementSeeds is the shipped catalog, upserted by code at boot.
var AchievementSeeds = []Achievement{
	{Code: "FIRST_STEPS", Title: "First Steps", Description: "Complete your first 5 tasks", Metric: MetricTaskCount, Rarity: RarityCommon, Requirement: 5, XPReward: 50, Icon: "star"},
	{Code: "GETTING_GOING", Title: "Getting Going", Description: "Complete 25 tasks", Metric: MetricTaskCount, Rarity: RarityCommon, Requirement: 25, XPReward: 100, Icon: "award"},
	{Code: "TASK_MASTER", Title: "Task Master", Description: "Complete 100 tasks", Metric: MetricTaskCount, Rarity: RarityRare, Requirement: 100, XPReward: 250, Icon: "trophy"},
	{Code: "PRODUCTIVITY_LEGEND", Title: "Productivity Legend", Description: "Complete 500 tasks", Metric: MetricTaskCount, Rarity: RarityLegendary, Requirement: 500, XPReward: 1000, Icon: "crown"},
	{Code: "FIRST_HUNDRED", Title: "First Hundred", Description: "Earn 100 XP", Metric: MetricXPTotal, Rarity: RarityCommon, Requirement: 100, XPReward: 50, Icon: "circle"},
	{Code: "ON_THE_WAY_UP", Title: "On the Way Up", Description: "Earn 500 XP", Metric: MetricXPTotal, Rarity: RarityRare, Requirement: 500, XPReward: 100, Icon: "target"},
	{Code: "PROFESSIONAL", Title: "Professional", Description: "Earn 2000 XP", Metric: MetricXPTotal, Rarity: RarityEpic, Requirement: 2000, XPReward: 300, Icon: "medal"},
	{Code: "GURU", Title: "Guru", Description: "Earn 5000 XP", Metric: MetricXPTotal, Rarity: RarityLegendary, Requirement: 5000, XPReward: 1000, Icon: "star"},
	{Code: "FINANCE_STRATEGIST", Title: "Finance Strategist", Description: "Complete 50 finance tasks", Metric: MetricCategoryCount, Category: "finance", Rarity: RarityEpic, Requirement: 50, XPReward: 500, Icon: "dollar-sign"},
	{Code: "MEDITATION_MASTER", Title: "Meditation Master", Description: "Complete 30 mindfulness tasks", Metric: MetricCategoryCount, Category: "mindfulness", Rarity: RarityEpic, Requirement: 30, XPReward: 500, Icon: "brain"},
}
