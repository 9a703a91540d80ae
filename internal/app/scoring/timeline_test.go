package scoring_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vigor-health/vigor/internal/app/catalog"
	"github.com/vigor-health/vigor/internal/app/scoring"
	"github.com/vigor-health/vigor/internal/domain"
)

func newProgram(start time.Time) *domain.UserProgram {
	return &domain.UserProgram{
		ID:            "u1",
		BaselineScore: domain.DefaultBaselineScore,
		StartDate:     domain.DayOf(start),
		Streaks:       make(map[domain.TaskID]domain.StreakState),
	}
}

func TestBuild_SunlightGoalDay(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC)

	p := newProgram(today)
	p.TaskLog = []domain.TaskLogEntry{
		{TaskID: domain.TaskSunlight, Date: domain.DayOf(today), RawProgress: 100},
	}

	tl := scoring.Build(cat, p, today)

	// 15 impact against a 125 budget scaled by 8: 290 + 0.96.
	if len(tl.RawSeries) != 1 {
		t.Fatalf("expected 1 raw point, got %d", len(tl.RawSeries))
	}
	if math.Abs(tl.RawSeries[0]-290.96) > 1e-9 {
		t.Errorf("raw score = %v, want 290.96", tl.RawSeries[0])
	}
	if tl.CurrentScore != 291 {
		t.Errorf("current score = %d, want 291", tl.CurrentScore)
	}
}

func TestBuild_AlcoholDayPenalizes(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC)

	p := newProgram(today)
	p.TaskLog = []domain.TaskLogEntry{
		{TaskID: domain.TaskAlcohol, Date: domain.DayOf(today), RawProgress: 100},
	}

	tl := scoring.Build(cat, p, today)

	// -40 impact against a 150 budget scaled by 3: 290 - 0.8.
	if math.Abs(tl.RawSeries[0]-289.2) > 1e-9 {
		t.Errorf("raw score = %v, want 289.2", tl.RawSeries[0])
	}
	if tl.CurrentScore != 289 {
		t.Errorf("current score = %d, want 289", tl.CurrentScore)
	}
}

func TestBuild_ClampsAtFloor(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -9)

	p := newProgram(start)
	p.BaselineScore = 202
	for i := 0; i < 10; i++ {
		p.TaskLog = append(p.TaskLog, domain.TaskLogEntry{
			TaskID:      domain.TaskAlcohol,
			Date:        domain.DayOf(start.AddDate(0, 0, i)),
			RawProgress: 100,
		})
	}

	tl := scoring.Build(cat, p, today)
	for i, v := range tl.RawSeries {
		if v < domain.ScoreFloor {
			t.Errorf("day %d dipped below floor: %v", i, v)
		}
	}
	if got := tl.RawSeries[len(tl.RawSeries)-1]; got != domain.ScoreFloor {
		t.Errorf("final score = %v, want clamped to %v", got, float64(domain.ScoreFloor))
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 5, 9, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -4)

	p := newProgram(start)
	for i := 0; i < 5; i++ {
		p.TaskLog = append(p.TaskLog, domain.TaskLogEntry{
			TaskID:      domain.TaskExercise,
			Date:        domain.DayOf(start.AddDate(0, 0, i)),
			RawProgress: 100,
		})
	}

	first := scoring.Build(cat, p, today)
	second := scoring.Build(cat, p, today)
	if !reflect.DeepEqual(first, second) {
		t.Error("rebuilding from the same snapshot produced different output")
	}
}

func TestBuild_SmoothingLagsRawTail(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -19)

	p := newProgram(start)
	for i := 0; i < 20; i++ {
		p.TaskLog = append(p.TaskLog, domain.TaskLogEntry{
			TaskID:      domain.TaskExercise,
			Date:        domain.DayOf(start.AddDate(0, 0, i)),
			RawProgress: 100,
		})
	}

	tl := scoring.Build(cat, p, today)

	// Early points pass through unsmoothed.
	if tl.Points[0].SmoothedValue != tl.RawSeries[0] {
		t.Errorf("first point = %v, want raw %v", tl.Points[0].SmoothedValue, tl.RawSeries[0])
	}
	// With a rising series the trailing average sits below the raw tail.
	last := len(tl.RawSeries) - 1
	if tl.Points[last].SmoothedValue >= tl.RawSeries[last] {
		t.Errorf("smoothed tail %v should lag raw tail %v on a rising series",
			tl.Points[last].SmoothedValue, tl.RawSeries[last])
	}
	// The headline number reads the raw tail, not the chart.
	if tl.CurrentScore != int(math.Round(tl.RawSeries[last])) {
		t.Errorf("current score %d != rounded raw tail %v", tl.CurrentScore, tl.RawSeries[last])
	}
	if tl.TrendPct <= 0 {
		t.Errorf("trend = %v, want positive for a rising series", tl.TrendPct)
	}
}

func TestBuild_SkipsFutureAndUnknownEntries(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	p := newProgram(today)
	p.TaskLog = []domain.TaskLogEntry{
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, 3)), RawProgress: 100},
		{TaskID: domain.TaskID("retired_task"), Date: domain.DayOf(today), RawProgress: 100},
	}

	tl := scoring.Build(cat, p, today)
	if math.Abs(tl.RawSeries[0]-290) > 1e-9 {
		t.Errorf("raw score = %v, want untouched baseline 290", tl.RawSeries[0])
	}
}

func TestBuild_PreProgramEntriesClampToDayZero(t *testing.T) {
	cat := catalog.Default()
	today := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	p := newProgram(today)
	p.TaskLog = []domain.TaskLogEntry{
		{TaskID: domain.TaskExercise, Date: domain.DayOf(today.AddDate(0, 0, -5)), RawProgress: 100},
	}

	tl := scoring.Build(cat, p, today)
	want := 290 + 25.0/125*8
	if math.Abs(tl.RawSeries[0]-want) > 1e-9 {
		t.Errorf("raw score = %v, want %v (entry folded into day 0)", tl.RawSeries[0], want)
	}
}
