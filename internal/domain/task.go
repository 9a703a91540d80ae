// Package domain holds the pure types of the Vigor scoring engine.
// No infrastructure dependencies — everything here is plain data plus
// the small invariant-preserving helpers the rest of the system shares.
package domain

import "time"

// ─── Task Catalog Types ─────────────────────────────────────────────────────

// TaskID identifies a task in the static catalog.
type TaskID string

const (
	TaskSunlight    TaskID = "sunlight"
	TaskExercise    TaskID = "exercise"
	TaskSleep       TaskID = "sleep"
	TaskMeals       TaskID = "meals"
	TaskSupplements TaskID = "supplements"
	TaskAbstinence  TaskID = "abstinence"
	TaskStress      TaskID = "stress"
	TaskAlcohol     TaskID = "alcohol"
)

// BehaviorKind is the closed set of task behaviors. Contribution and streak
// logic dispatch on it with exhaustive switches — adding a kind is a
// compile-visible change, not a silent fallthrough.
type BehaviorKind int

const (
	KindBoolean BehaviorKind = iota
	KindSlider
	KindInvertedSlider
	KindChecklist
	KindMealLog
)

// String returns the wire name of the behavior kind.
func (k BehaviorKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindSlider:
		return "slider"
	case KindInvertedSlider:
		return "inverted_slider"
	case KindChecklist:
		return "checklist"
	case KindMealLog:
		return "meal_log"
	}
	return "unknown"
}

// TaskDefinition is a static catalog row. Immutable after process start.
type TaskDefinition struct {
	ID           TaskID       `json:"id"`
	Name         string       `json:"name"`
	Kind         BehaviorKind `json:"-"`
	KindName     string       `json:"kind"`
	Goal         float64      `json:"goal"`
	MaxValue     float64      `json:"max_value"`
	Step         float64      `json:"step"`
	ImpactWeight float64      `json:"impact_weight"`
	// Inverted marks boolean tasks framed as avoidance: reported progress
	// counts against the score.
	Inverted bool `json:"inverted"`
	// DualDirection marks "do" tasks that also count toward the negative
	// impact budget (sleep and meals — underperforming them is itself a
	// negative outcome).
	DualDirection  bool     `json:"dual_direction"`
	ChecklistItems []string `json:"checklist_items,omitempty"`
}

// IsDont reports whether the task belongs to the "don't" group.
func (d TaskDefinition) IsDont() bool {
	return d.Inverted || d.Kind == KindInvertedSlider
}

// ─── Task Log Types ─────────────────────────────────────────────────────────

// MealEntry is one meal logged within a day's meal-log entry.
type MealEntry struct {
	ID       string    `json:"id"`
	Score    float64   `json:"score"`
	Note     string    `json:"note"`
	LoggedAt time.Time `json:"logged_at"`
}

// SignedScore converts a meal score into its signed contribution toward the
// day's rawProgress: scores below 50 penalize by their distance from 100.
func (m MealEntry) SignedScore() float64 {
	if m.Score < 50 {
		return -(100 - m.Score)
	}
	return m.Score
}

// TaskLogEntry is one (task, calendar day) record. Upsert semantics: a second
// log on the same day updates this entry; meal logs append to History.
type TaskLogEntry struct {
	TaskID TaskID    `json:"task_id"`
	Date   time.Time `json:"date"` // midnight UTC
	// RawProgress is the percentage of goal/max in 0..100. Meal logs carry
	// the signed sum of their history entries and may be negative.
	RawProgress  float64     `json:"raw_progress"`
	CheckedItems []string    `json:"checked_items,omitempty"` // checklist only
	History      []MealEntry `json:"history,omitempty"`       // meal log only
}

// MealProgress recomputes a meal-log rawProgress from its history.
func MealProgress(history []MealEntry) float64 {
	var sum float64
	for _, m := range history {
		sum += m.SignedScore()
	}
	return sum
}

// ─── User Program ───────────────────────────────────────────────────────────

// DefaultBaselineScore is assigned at account creation when onboarding
// supplies no estimate.
const DefaultBaselineScore = 290

// Score bounds. Every emitted score value is clamped into this range.
const (
	ScoreFloor = 200
	ScoreCeil  = 1100
)

// ClampScore bounds a score value into [ScoreFloor, ScoreCeil].
func ClampScore(v float64) float64 {
	if v < ScoreFloor {
		return ScoreFloor
	}
	if v > ScoreCeil {
		return ScoreCeil
	}
	return v
}

// StreakState is the cached streak for one task. It is derived state:
// a full recompute from the task log must always produce the same count.
type StreakState struct {
	Count        int       `json:"count"`
	LastUpdate   time.Time `json:"last_update"`
	LastNotified time.Time `json:"last_notified"`
}

// UserProgram is the full persisted snapshot for one user. The engine
// receives it whole, computes, and hands back an updated whole — the store
// never sees partial writes.
type UserProgram struct {
	ID            string                 `json:"id"`
	BaselineScore float64                `json:"baseline_score"`
	StartDate     time.Time              `json:"start_date"` // immutable after creation
	TaskLog       []TaskLogEntry         `json:"task_log"`
	Streaks       map[TaskID]StreakState `json:"streaks"`
	Unlocked      []string               `json:"unlocked_achievements"` // append-only
	CreatedAt     time.Time              `json:"created_at"`
}

// Entry returns the log entry for (taskID, day), or nil.
func (p *UserProgram) Entry(taskID TaskID, day time.Time) *TaskLogEntry {
	day = DayOf(day)
	for i := range p.TaskLog {
		e := &p.TaskLog[i]
		if e.TaskID == taskID && e.Date.Equal(day) {
			return e
		}
	}
	return nil
}

// EntriesFor returns all log entries for one task.
func (p *UserProgram) EntriesFor(taskID TaskID) []TaskLogEntry {
	var out []TaskLogEntry
	for _, e := range p.TaskLog {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

// HasUnlocked reports whether an achievement id is already unlocked.
func (p *UserProgram) HasUnlocked(id string) bool {
	for _, u := range p.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// ─── Calendar Helpers ───────────────────────────────────────────────────────

// DayOf truncates a time to its calendar day (midnight UTC).
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (b after a → >0).
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// ─── Score Output Types ─────────────────────────────────────────────────────

// ScorePoint is one day of the smoothed score series. Output only.
type ScorePoint struct {
	DayIndex      int     `json:"day_index"`
	SmoothedValue float64 `json:"smoothed_value"`
}

// KeyFactor ranks one task's influence on the score for display.
type KeyFactor struct {
	TaskID      TaskID  `json:"task_id"`
	Streak      int     `json:"streak"`
	TotalImpact float64 `json:"total_impact"`
	Dont        bool    `json:"dont"`
}
