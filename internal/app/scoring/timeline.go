package scoring

import (
	"log"
	"math"
	"time"

	"github.com/vigor-health/vigor/internal/app/catalog"
	"github.com/vigor-health/vigor/internal/domain"
)

// Daily scaling factors: a perfect "do" day moves the score up by at most 8
// points, a worst-case "don't" day down by at most 3.
const (
	positiveDailyScale = 8
	negativeDailyScale = 3
)

// smoothingWindowMax bounds the trailing moving-average window.
const smoothingWindowMax = 5

// Timeline is the full output of one score recomputation.
type Timeline struct {
	Points       []domain.ScorePoint `json:"points"`
	RawSeries    []float64           `json:"raw_series"`
	CurrentScore int                 `json:"current_score"`
	TrendPct     float64             `json:"trend_pct"`
}

// Build derives the daily score series for a program from its task log.
// Deterministic and side-effect free: rebuilding from the same snapshot
// yields the same output. Unknown task ids contribute nothing; malformed
// entries are skipped with a warning.
func Build(cat *catalog.Catalog, p *domain.UserProgram, today time.Time) Timeline {
	duration := domain.DaysBetween(p.StartDate, today) + 1
	if duration < 1 {
		duration = 1
	}

	dailyPositive := make([]float64, duration)
	dailyNegative := make([]float64, duration)

	for _, entry := range p.TaskLog {
		if entry.Date.IsZero() || math.IsNaN(entry.RawProgress) {
			log.Printf("[scoring] skipping malformed log entry for task %q", entry.TaskID)
			continue
		}
		def, ok := cat.DefinitionOf(entry.TaskID)
		if !ok {
			// Catalogs evolve; stale ids in old logs are not an error.
			continue
		}

		idx := domain.DaysBetween(p.StartDate, entry.Date)
		if idx < 0 {
			idx = 0 // logs predating the program clamp to day 0
		}
		if idx >= duration {
			continue // future-dated entries are not part of today's series
		}

		c := Contribution(def, entry)
		if c >= 0 {
			dailyPositive[idx] += c
		} else {
			dailyNegative[idx] += c
		}
	}

	totalPositive := cat.TotalPositiveImpact()
	totalNegative := cat.TotalNegativeImpact()

	raw := make([]float64, duration)
	cumulative := p.BaselineScore
	for i := 0; i < duration; i++ {
		var scaledPositive, scaledNegative float64
		if totalPositive > 0 {
			scaledPositive = dailyPositive[i] / totalPositive * positiveDailyScale
		}
		if totalNegative > 0 {
			scaledNegative = dailyNegative[i] / totalNegative * negativeDailyScale
		}
		cumulative += scaledPositive + scaledNegative
		raw[i] = domain.ClampScore(cumulative)
	}

	smoothed := smooth(raw)
	points := make([]domain.ScorePoint, duration)
	for i, v := range smoothed {
		points[i] = domain.ScorePoint{DayIndex: i, SmoothedValue: v}
	}

	// Current score reads the unsmoothed tail — the chart lags it slightly.
	current := int(math.Round(raw[duration-1]))

	var trend float64
	if smoothed[0] > 0 {
		trend = (float64(current) - smoothed[0]) / smoothed[0] * 100
	}

	return Timeline{
		Points:       points,
		RawSeries:    raw,
		CurrentScore: current,
		TrendPct:     trend,
	}
}

// smooth applies a trailing simple moving average. The first window-many
// points pass through unchanged.
func smooth(raw []float64) []float64 {
	window := len(raw) / 2
	if window > smoothingWindowMax {
		window = smoothingWindowMax
	}

	out := make([]float64, len(raw))
	for i := range raw {
		if i < window {
			out[i] = raw[i]
			continue
		}
		var sum float64
		for j := i - window; j <= i; j++ {
			sum += raw[j]
		}
		out[i] = sum / float64(window+1)
	}
	return out
}
