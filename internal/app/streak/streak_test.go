package streak_test

import (
	"testing"
	"time"

	"github.com/vigor-health/vigor/internal/app/catalog"
	"github.com/vigor-health/vigor/internal/app/streak"
	"github.com/vigor-health/vigor/internal/domain"
)

func def(t *testing.T, id domain.TaskID) domain.TaskDefinition {
	t.Helper()
	d, ok := catalog.Default().DefinitionOf(id)
	if !ok {
		t.Fatalf("task %q not in catalog", id)
	}
	return d
}

var today = time.Date(2025, 8, 10, 14, 0, 0, 0, time.UTC)

func entriesEndingToday(taskID domain.TaskID, progress float64, n int) []domain.TaskLogEntry {
	var out []domain.TaskLogEntry
	for i := 0; i < n; i++ {
		out = append(out, domain.TaskLogEntry{
			TaskID:      taskID,
			Date:        domain.DayOf(today.AddDate(0, 0, -i)),
			RawProgress: progress,
		})
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// Qualification Predicates
// ═══════════════════════════════════════════════════════════════════════════

func TestQualifies_PerTask(t *testing.T) {
	cases := []struct {
		name  string
		id    domain.TaskID
		entry domain.TaskLogEntry
		want  bool
	}{
		{"sunlight full goal", domain.TaskSunlight, domain.TaskLogEntry{RawProgress: 100}, true},
		{"sunlight partial", domain.TaskSunlight, domain.TaskLogEntry{RawProgress: 99}, false},
		{"sleep 7h", domain.TaskSleep, domain.TaskLogEntry{RawProgress: 87.5}, true},
		{"sleep 6h", domain.TaskSleep, domain.TaskLogEntry{RawProgress: 75}, false},
		{"exercise done", domain.TaskExercise, domain.TaskLogEntry{RawProgress: 100}, true},
		{"exercise skipped", domain.TaskExercise, domain.TaskLogEntry{RawProgress: 0}, false},
		{"abstinence held", domain.TaskAbstinence, domain.TaskLogEntry{RawProgress: 0}, true},
		{"abstinence lapsed", domain.TaskAbstinence, domain.TaskLogEntry{RawProgress: 100}, false},
		{"stress below goal", domain.TaskStress, domain.TaskLogEntry{RawProgress: 20}, true}, // level 2 of 10, goal 3
		{"stress at goal", domain.TaskStress, domain.TaskLogEntry{RawProgress: 30}, false},
		{"alcohol zero goal never qualifies", domain.TaskAlcohol, domain.TaskLogEntry{RawProgress: 0}, false},
		{
			"supplements full stack", domain.TaskSupplements,
			domain.TaskLogEntry{CheckedItems: []string{"vitamin_d3", "zinc", "magnesium", "omega_3"}},
			true,
		},
		{
			"supplements partial stack", domain.TaskSupplements,
			domain.TaskLogEntry{CheckedItems: []string{"vitamin_d3"}},
			false,
		},
		{
			"quality meal", domain.TaskMeals,
			domain.TaskLogEntry{History: []domain.MealEntry{{Score: 40}, {Score: 80}}},
			true,
		},
		{
			"junk meals only", domain.TaskMeals,
			domain.TaskLogEntry{History: []domain.MealEntry{{Score: 40}, {Score: 74}}},
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.entry.TaskID = c.id
			if got := streak.Qualifies(def(t, c.id), c.entry); got != c.want {
				t.Errorf("Qualifies = %v, want %v", got, c.want)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Evaluation
// ═══════════════════════════════════════════════════════════════════════════

func TestEvaluate_ConsecutiveDays(t *testing.T) {
	exercise := def(t, domain.TaskExercise)
	for n := 1; n <= 6; n++ {
		entries := entriesEndingToday(domain.TaskExercise, 100, n)
		if got := streak.Evaluate(exercise, entries, today); got != n {
			t.Errorf("%d consecutive days: streak = %d, want %d", n, got, n)
		}
	}
}

func TestEvaluate_EndedYesterdayStillAlive(t *testing.T) {
	exercise := def(t, domain.TaskExercise)
	entries := []domain.TaskLogEntry{
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -1)), RawProgress: 100},
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -2)), RawProgress: 100},
	}
	if got := streak.Evaluate(exercise, entries, today); got != 2 {
		t.Errorf("streak ending yesterday = %d, want 2", got)
	}
}

func TestEvaluate_StaleStreakIsZero(t *testing.T) {
	exercise := def(t, domain.TaskExercise)
	entries := []domain.TaskLogEntry{
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -2)), RawProgress: 100},
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -3)), RawProgress: 100},
	}
	if got := streak.Evaluate(exercise, entries, today); got != 0 {
		t.Errorf("streak ending two days ago = %d, want 0", got)
	}
}

func TestEvaluate_GapBreaksWalk(t *testing.T) {
	exercise := def(t, domain.TaskExercise)
	entries := entriesEndingToday(domain.TaskExercise, 100, 2)
	entries = append(entries, domain.TaskLogEntry{
		TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -4)), RawProgress: 100,
	})
	if got := streak.Evaluate(exercise, entries, today); got != 2 {
		t.Errorf("streak across a gap = %d, want 2", got)
	}
}

func TestEvaluate_DuplicateDaysCountOnce(t *testing.T) {
	exercise := def(t, domain.TaskExercise)
	entries := entriesEndingToday(domain.TaskExercise, 100, 1)
	entries = append(entries, entries[0]) // same day logged twice
	if got := streak.Evaluate(exercise, entries, today); got != 1 {
		t.Errorf("duplicate day streak = %d, want 1", got)
	}
}

func TestEvaluate_NonQualifyingDaysIgnored(t *testing.T) {
	exercise := def(t, domain.TaskExercise)
	entries := []domain.TaskLogEntry{
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today), RawProgress: 100},
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -1)), RawProgress: 0},
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -2)), RawProgress: 100},
	}
	if got := streak.Evaluate(exercise, entries, today); got != 1 {
		t.Errorf("streak over a rest day = %d, want 1", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notification Policy
// ═══════════════════════════════════════════════════════════════════════════

func TestNotificationDue_OncePerDay(t *testing.T) {
	state := domain.StreakState{Count: 3}
	if !streak.NotificationDue(state, true, today) {
		t.Error("first qualifying update of the day should notify")
	}

	state.LastNotified = today
	if streak.NotificationDue(state, true, today.Add(2*time.Hour)) {
		t.Error("second update on the same day should not notify again")
	}

	if !streak.NotificationDue(state, true, today.AddDate(0, 0, 1)) {
		t.Error("next day should notify again")
	}
}

func TestNotificationDue_RequiresQualifiedAndRunning(t *testing.T) {
	if streak.NotificationDue(domain.StreakState{Count: 3}, false, today) {
		t.Error("non-qualifying update should not notify")
	}
	if streak.NotificationDue(domain.StreakState{Count: 0}, true, today) {
		t.Error("zero streak should not notify")
	}
}
