package services

import (
	"fmt"
	"time"

	"task-quest-system/models"
)

// PeriodStart maps a period and an instant to the start of the window the
// instant falls into: local midnight for daily, midnight of the most recent
// Sunday for weekly, midnight of the 1st for monthly.
func PeriodStart(period models.Period, now time.Time) (time.Time, error) {
	switch period {
	case models.PeriodDaily:
		return startOfDay(now), nil
	case models.PeriodWeekly:
		day := startOfDay(now)
		return day.AddDate(0, 0, -int(day.Weekday())), nil
	case models.PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
