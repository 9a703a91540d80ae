// Package streak computes per-task consecutive-day streaks from the task
// log. Pure functions: the caller persists the resulting count into the
// program's streak cache and decides whether to surface a notification.
package streak

import (
	"sort"
	"time"

	"github.com/vigor-health/vigor/internal/domain"
)

// Qualifies reports whether a day's log counts as a success for streak
// purposes. One predicate per task, used identically by the full-history
// recompute and the did-this-update-qualify check.
func Qualifies(def domain.TaskDefinition, e domain.TaskLogEntry) bool {
	// ID-level special cases first.
	switch def.ID {
	case domain.TaskSunlight:
		return e.RawProgress >= 100 // full goal, not a partial session
	case domain.TaskSleep:
		return e.RawProgress >= 87.5 // ≥7h against the 8h goal
	}

	switch def.Kind {
	case domain.KindBoolean:
		if def.Inverted {
			return e.RawProgress < 50
		}
		return e.RawProgress > 0

	case domain.KindSlider:
		return e.RawProgress >= 100

	case domain.KindInvertedSlider:
		if def.MaxValue <= 0 {
			return false
		}
		return e.RawProgress/100*def.MaxValue < def.Goal

	case domain.KindChecklist:
		return len(def.ChecklistItems) > 0 &&
			len(e.CheckedItems) >= len(def.ChecklistItems)

	case domain.KindMealLog:
		for _, m := range e.History {
			if m.Score >= 75 {
				return true
			}
		}
		return false
	}

	return false
}

// Evaluate computes the current streak for one task from its full log.
// A streak ends today or yesterday; any older qualifying day means 0.
func Evaluate(def domain.TaskDefinition, entries []domain.TaskLogEntry, today time.Time) int {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, e := range entries {
		if e.Date.IsZero() || !Qualifies(def, e) {
			continue
		}
		day := domain.DayOf(e.Date)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	// Broken if neither today nor yesterday qualified.
	if domain.DaysBetween(days[0], today) > 1 {
		return 0
	}

	count := 1
	for i := 1; i < len(days); i++ {
		if domain.DaysBetween(days[i], days[i-1]) != 1 {
			break
		}
		count++
	}
	return count
}

// NotificationDue reports whether a "streak extended" notification should be
// surfaced for this update: the update qualified, a streak is running, and
// none was sent today for this task.
func NotificationDue(state domain.StreakState, qualified bool, today time.Time) bool {
	if !qualified || state.Count == 0 {
		return false
	}
	return state.LastNotified.IsZero() ||
		!domain.DayOf(state.LastNotified).Equal(domain.DayOf(today))
}
