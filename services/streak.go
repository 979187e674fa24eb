package services

import (
	"sort"
	"time"
)

// Streak summarizes consecutive-day activity.
type Streak struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	LastActivity *time.Time `json:"lastActivity"`
}

// ComputeStreak derives the streak from raw completion instants. The streak
// only counts when the most recent completion day is today; a gap before
// today resets Current to zero. Longest is the max of the walk and the
// stored high-water mark.
func ComputeStreak(completions []time.Time, now time.Time, storedLongest int) Streak {
	s := Streak{Longest: storedLongest}
	if len(completions) == 0 {
		return s
	}

	sorted := make([]time.Time, len(completions))
	copy(sorted, completions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	last := sorted[0]
	s.LastActivity = &last

	loc := now.Location()
	today := startOfDay(now)
	if last.In(loc).Before(today) {
		return s
	}

	days := make(map[string]bool, len(sorted))
	for _, c := range sorted {
		days[c.In(loc).Format("2006-01-02")] = true
	}

	s.Current = 1
	for d := today.AddDate(0, 0, -1); days[d.Format("2006-01-02")]; d = d.AddDate(0, 0, -1) {
		s.Current++
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	return s
}
