package domain

import "time"

// ─── Achievement Types ──────────────────────────────────────────────────────

// CriterionKind is the closed set of unlock criteria.
type CriterionKind int

const (
	// CriterionFirstQualifyingTask unlocks on the first qualifying log ever.
	CriterionFirstQualifyingTask CriterionKind = iota
	// CriterionDailyDeltaAtLeast unlocks when today's score gain reaches
	// the threshold.
	CriterionDailyDeltaAtLeast
	// CriterionScoreAtLeast unlocks when the current score reaches the
	// threshold.
	CriterionScoreAtLeast
	// CriterionQualifyingDaysForTask unlocks after N distinct qualifying
	// days for one task.
	CriterionQualifyingDaysForTask
)

// Criterion is a tagged unlock condition. TaskID and Threshold are read
// according to Kind.
type Criterion struct {
	Kind      CriterionKind `json:"kind"`
	TaskID    TaskID        `json:"task_id,omitempty"`
	Threshold float64       `json:"threshold,omitempty"`
}

// Met evaluates the criterion against an aggregate snapshot. The switch is
// exhaustive over CriterionKind.
func (c Criterion) Met(stats AggregateStats) bool {
	switch c.Kind {
	case CriterionFirstQualifyingTask:
		return stats.AnyQualifyingEver
	case CriterionDailyDeltaAtLeast:
		return stats.DailyScoreDelta >= c.Threshold
	case CriterionScoreAtLeast:
		return stats.CurrentScore >= c.Threshold
	case CriterionQualifyingDaysForTask:
		return float64(stats.QualifyingDays[c.TaskID]) >= c.Threshold
	}
	return false
}

// AchievementDef defines a single achievement.
type AchievementDef struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Criterion   Criterion `json:"criterion"`
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Notified   bool      `json:"notified"`
}

// AggregateStats is the snapshot fed to achievement criteria. All counts are
// distinct calendar days unless noted.
type AggregateStats struct {
	ExerciseDays        int     `json:"exercise_days"`
	TotalSunMinutes     float64 `json:"total_sun_minutes"`
	SleepDays           int     `json:"sleep_days"`
	DietDays            int     `json:"diet_days"`
	SupplementationDays int     `json:"supplementation_days"`
	CurrentScore        float64 `json:"current_score"`
	DailyScoreDelta     float64 `json:"daily_score_delta"`

	// QualifyingDays counts distinct qualifying days per task.
	QualifyingDays map[TaskID]int `json:"qualifying_days"`
	// AnyQualifyingEver is true once any task has ever qualified.
	AnyQualifyingEver bool `json:"any_qualifying_ever"`
}
