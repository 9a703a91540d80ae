// Package scoring implements the daily score derivation pipeline: per-entry
// contributions and the cumulative, clamped, smoothed score timeline. All of
// it is pure — both the read path and the write path call this one
// implementation.
package scoring

import (
	"math"

	"github.com/vigor-health/vigor/internal/domain"
)

// Contribution computes the signed, pre-normalization effect of one day's
// task log on the score. The switch is exhaustive over BehaviorKind.
func Contribution(def domain.TaskDefinition, entry domain.TaskLogEntry) float64 {
	progress := entry.RawProgress

	switch def.Kind {
	case domain.KindBoolean:
		if def.Inverted {
			return -(progress / 100) * def.ImpactWeight
		}
		return (progress / 100) * def.ImpactWeight

	case domain.KindSlider:
		if def.ID == domain.TaskSleep {
			hours := (progress / 100) * def.Goal
			return SleepMultiplier(hours) * def.ImpactWeight
		}
		if def.Goal <= 0 {
			return 0
		}
		// Overperformance caps at 2x credit.
		multiplier := math.Min(progress/100, 2)
		return multiplier * def.ImpactWeight

	case domain.KindInvertedSlider:
		// No cap: any reported level penalizes proportionally.
		return -(progress / 100) * def.ImpactWeight

	case domain.KindChecklist:
		total := len(def.ChecklistItems)
		if total == 0 {
			return 0
		}
		pct := 100 * float64(len(entry.CheckedItems)) / float64(total)
		return (pct / 100) * def.ImpactWeight

	case domain.KindMealLog:
		// RawProgress is already the signed sum of the day's meal scores.
		return progress * def.ImpactWeight / 100
	}

	return 0
}

// SleepMultiplier maps hours slept onto [-1, 1]:
// a penalty ramp below 7h (−1 at ≤4h), a neutral band at 7–8h, and a reward
// ramp above 8h (+1 at ≥10h). Values beyond the ramps clamp, never
// extrapolate.
func SleepMultiplier(hours float64) float64 {
	switch {
	case hours < 7:
		return -math.Min((7-hours)/3, 1)
	case hours < 8:
		return 0
	default:
		return math.Min((hours-8)/2, 1)
	}
}
