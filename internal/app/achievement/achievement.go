// Package achievement evaluates the achievement catalog against aggregate
// statistics. Unlocks are append-only: once earned, never revoked, even if
// the aggregates later regress.
package achievement

import (
	"time"

	"github.com/vigor-health/vigor/internal/app/catalog"
	"github.com/vigor-health/vigor/internal/app/streak"
	"github.com/vigor-health/vigor/internal/domain"
)

// Evaluate returns the definitions newly satisfied by stats — criteria are
// independent, so order never matters. Already-unlocked ids are skipped.
// The caller appends the results to the program's unlocked set.
func Evaluate(p *domain.UserProgram, stats domain.AggregateStats) []domain.AchievementDef {
	var newly []domain.AchievementDef
	for _, def := range Catalog() {
		if p.HasUnlocked(def.ID) {
			continue
		}
		if def.Criterion.Met(stats) {
			newly = append(newly, def)
		}
	}
	return newly
}

// Aggregates builds the stats snapshot criteria are tested against.
// currentScore and dailyDelta come from the timeline builder.
func Aggregates(cat *catalog.Catalog, p *domain.UserProgram, currentScore, dailyDelta float64) domain.AggregateStats {
	stats := domain.AggregateStats{
		CurrentScore:    currentScore,
		DailyScoreDelta: dailyDelta,
		QualifyingDays:  make(map[domain.TaskID]int),
	}

	seen := make(map[domain.TaskID]map[time.Time]bool)
	for _, e := range p.TaskLog {
		def, ok := cat.DefinitionOf(e.TaskID)
		if !ok || e.Date.IsZero() {
			continue
		}

		if def.ID == domain.TaskSunlight && e.RawProgress > 0 {
			stats.TotalSunMinutes += e.RawProgress / 100 * def.Goal
		}

		if !streak.Qualifies(def, e) {
			continue
		}
		day := domain.DayOf(e.Date)
		if seen[e.TaskID] == nil {
			seen[e.TaskID] = make(map[time.Time]bool)
		}
		if seen[e.TaskID][day] {
			continue
		}
		seen[e.TaskID][day] = true
		stats.QualifyingDays[e.TaskID]++
		stats.AnyQualifyingEver = true
	}

	stats.ExerciseDays = stats.QualifyingDays[domain.TaskExercise]
	stats.SleepDays = stats.QualifyingDays[domain.TaskSleep]
	stats.DietDays = stats.QualifyingDays[domain.TaskMeals]
	stats.SupplementationDays = stats.QualifyingDays[domain.TaskSupplements]

	return stats
}

// Catalog returns the full achievement catalog.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Getting started ────────────────────────────────────────────
		{
			ID: "first_log", Name: "First Step", Icon: "🌱",
			Description: "Complete your first habit.",
			Criterion:   domain.Criterion{Kind: domain.CriterionFirstQualifyingTask},
		},

		// ── Daily momentum ─────────────────────────────────────────────
		{
			ID: "strong_day", Name: "Strong Day", Icon: "📈",
			Description: "Gain 3 points in a single day.",
			Criterion:   domain.Criterion{Kind: domain.CriterionDailyDeltaAtLeast, Threshold: 3},
		},
		{
			ID: "peak_day", Name: "Peak Day", Icon: "⚡",
			Description: "Gain 5 points in a single day.",
			Criterion:   domain.Criterion{Kind: domain.CriterionDailyDeltaAtLeast, Threshold: 5},
		},

		// ── Rank milestones (aligned with tier boundaries) ─────────────
		{
			ID: "rank_silver", Name: "Silver", Icon: "🥈",
			Description: "Reach a score of 351.",
			Criterion:   domain.Criterion{Kind: domain.CriterionScoreAtLeast, Threshold: 351},
		},
		{
			ID: "rank_gold", Name: "Gold", Icon: "🥇",
			Description: "Reach a score of 601.",
			Criterion:   domain.Criterion{Kind: domain.CriterionScoreAtLeast, Threshold: 601},
		},
		{
			ID: "rank_platinum", Name: "Platinum", Icon: "💎",
			Description: "Reach a score of 751.",
			Criterion:   domain.Criterion{Kind: domain.CriterionScoreAtLeast, Threshold: 751},
		},
		{
			ID: "rank_champion", Name: "Champion", Icon: "👑",
			Description: "Reach a score of 901.",
			Criterion:   domain.Criterion{Kind: domain.CriterionScoreAtLeast, Threshold: 901},
		},

		// ── Consistency ────────────────────────────────────────────────
		{
			ID: "iron_week", Name: "Iron Week", Icon: "🏋️",
			Description: "Train on 7 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskExercise,
				Threshold: 7,
			},
		},
		{
			ID: "iron_month", Name: "Iron Month", Icon: "💪",
			Description: "Train on 30 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskExercise,
				Threshold: 30,
			},
		},
		{
			ID: "well_rested", Name: "Well Rested", Icon: "😴",
			Description: "Sleep 7+ hours on 7 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskSleep,
				Threshold: 7,
			},
		},
		{
			ID: "deep_sleeper", Name: "Deep Sleeper", Icon: "🌙",
			Description: "Sleep 7+ hours on 30 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskSleep,
				Threshold: 30,
			},
		},
		{
			ID: "clean_eater", Name: "Clean Eater", Icon: "🥗",
			Description: "Log a quality meal on 14 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskMeals,
				Threshold: 14,
			},
		},
		{
			ID: "stacked", Name: "Stacked", Icon: "💊",
			Description: "Complete the full supplement stack on 30 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskSupplements,
				Threshold: 30,
			},
		},
		{
			ID: "sun_seeker", Name: "Sun Seeker", Icon: "☀️",
			Description: "Hit your sunlight goal on 14 different days.",
			Criterion: domain.Criterion{
				Kind:      domain.CriterionQualifyingDaysForTask,
				TaskID:    domain.TaskSunlight,
				Threshold: 14,
			},
		},
	}
}
