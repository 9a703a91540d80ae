// Package metrics provides Prometheus metrics for Vigor: task updates,
// score recomputations, streaks, and achievement unlocks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Task Log ───────────────────────────────────────────────────────────────

// TaskUpdates tracks task log upserts by task id.
var TaskUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vigor",
	Name:      "task_updates_total",
	Help:      "Total task log updates.",
}, []string{"task"})

// MealEntriesDeleted tracks explicit meal-history deletions.
var MealEntriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vigor",
	Name:      "meal_entries_deleted_total",
	Help:      "Total meal history entries deleted.",
})

// ─── Scoring ────────────────────────────────────────────────────────────────

// ScoreComputations tracks full timeline recomputations.
var ScoreComputations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vigor",
	Name:      "score_computations_total",
	Help:      "Total score timeline recomputations.",
})

// ScoreComputeDuration tracks timeline build duration in seconds.
var ScoreComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "vigor",
	Name:      "score_compute_duration_seconds",
	Help:      "Score timeline build duration in seconds.",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
})

// ─── Engagement ─────────────────────────────────────────────────────────────

// AchievementsUnlocked tracks newly unlocked achievements.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vigor",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked across all users.",
})

// StreakNotifications tracks streak-extended notifications recorded.
var StreakNotifications = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vigor",
	Name:      "streak_notifications_total",
	Help:      "Total streak notifications recorded.",
})
