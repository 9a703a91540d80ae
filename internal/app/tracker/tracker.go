// Package tracker orchestrates the scoring pipeline: one task update flows
// through contribution → streak → persist → achievements, and one statistics
// read rebuilds the full timeline from the persisted snapshot. Both paths
// share the same pure scoring code — there is exactly one implementation of
// every formula.
package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vigor-health/vigor/internal/app/achievement"
	"github.com/vigor-health/vigor/internal/app/catalog"
	"github.com/vigor-health/vigor/internal/app/scoring"
	"github.com/vigor-health/vigor/internal/app/streak"
	"github.com/vigor-health/vigor/internal/domain"
	"github.com/vigor-health/vigor/internal/infra/metrics"
)

// Notifier records user-facing notifications. Nil-safe from the service's
// perspective: a nil notifier disables recording.
type Notifier interface {
	Record(n domain.Notification) error
}

// Service is the scoring pipeline entry point. All dependencies are
// injected — no package-level state.
type Service struct {
	store    domain.ProgramStore
	catalog  *catalog.Catalog
	notifier Notifier
}

// NewService creates a tracker service.
func NewService(store domain.ProgramStore, cat *catalog.Catalog, notifier Notifier) *Service {
	return &Service{store: store, catalog: cat, notifier: notifier}
}

// Catalog returns the task catalog the service scores against.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// ─── Program Creation ───────────────────────────────────────────────────────

// CreateProgram starts a new user program. A zero baseline falls back to the
// onboarding default; a zero start date means today.
func (s *Service) CreateProgram(baseline float64, startDate time.Time) (*domain.UserProgram, error) {
	return s.CreateProgramAt(baseline, startDate, time.Now())
}

// CreateProgramAt is CreateProgram with an explicit clock.
func (s *Service) CreateProgramAt(baseline float64, startDate, now time.Time) (*domain.UserProgram, error) {
	if baseline == 0 {
		baseline = domain.DefaultBaselineScore
	}
	if startDate.IsZero() {
		startDate = now
	}

	p := &domain.UserProgram{
		ID:            uuid.NewString(),
		BaselineScore: baseline,
		StartDate:     domain.DayOf(startDate),
		Streaks:       make(map[domain.TaskID]domain.StreakState),
		CreatedAt:     now,
	}
	if err := s.store.SaveUserProgram(p); err != nil {
		return nil, fmt.Errorf("save new program: %w", err)
	}
	return p, nil
}

// Program loads a user's full snapshot.
func (s *Service) Program(userID string) (*domain.UserProgram, error) {
	return s.store.LoadUserProgram(userID)
}

// ─── Task Update ────────────────────────────────────────────────────────────

// MealInput is one meal to append to a day's history.
type MealInput struct {
	Score float64 `json:"score"`
	Note  string  `json:"note"`
}

// UpdateRequest is the shape of one "user logged task X with value Y on
// date D" request. Exactly one of RawProgress, CheckedItems, or Meal is
// expected, matching the task's behavior kind.
type UpdateRequest struct {
	UserID       string
	TaskID       domain.TaskID
	Date         time.Time // zero → now
	RawProgress  *float64
	CheckedItems []string
	Meal         *MealInput
}

// UpdateResult is what one task update produced.
type UpdateResult struct {
	Entry           domain.TaskLogEntry     `json:"entry"`
	Streak          domain.StreakState      `json:"streak"`
	Qualified       bool                    `json:"qualified"`
	CurrentScore    int                     `json:"current_score"`
	DailyDelta      float64                 `json:"daily_delta"`
	NewAchievements []domain.AchievementDef `json:"new_achievements"`
}

// UpdateTask runs the full pipeline for one logged task.
func (s *Service) UpdateTask(req UpdateRequest) (*UpdateResult, error) {
	return s.UpdateTaskAt(req, time.Now())
}

// UpdateTaskAt is UpdateTask with an explicit clock.
func (s *Service) UpdateTaskAt(req UpdateRequest, now time.Time) (*UpdateResult, error) {
	def, ok := s.catalog.DefinitionOf(req.TaskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	p, err := s.store.LoadUserProgram(req.UserID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = now
	}
	entry, err := s.upsertEntry(p, def, req, date, now)
	if err != nil {
		return nil, err
	}

	// Streak: recompute this task from the updated log, refresh the cache.
	qualified := streak.Qualifies(def, *entry)
	count := streak.Evaluate(def, p.EntriesFor(def.ID), now)
	state := p.Streaks[def.ID]
	state.Count = count
	state.LastUpdate = now

	if s.notifier != nil && streak.NotificationDue(state, qualified, now) {
		if err := s.notifier.Record(domain.Notification{
			UserID:    p.ID,
			Type:      domain.NotifyStreak,
			Title:     "Streak extended",
			Body:      fmt.Sprintf("%s: %d days and counting.", def.Name, count),
			CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("record streak notification: %w", err)
		}
		state.LastNotified = now
		metrics.StreakNotifications.Inc()
	}
	p.Streaks[def.ID] = state

	// Score + achievements against the updated snapshot.
	timeline := s.buildTimeline(p, now)
	delta := dailyDelta(p, timeline)
	stats := achievement.Aggregates(s.catalog, p, float64(timeline.CurrentScore), delta)
	newly := achievement.Evaluate(p, stats)
	for _, a := range newly {
		p.Unlocked = append(p.Unlocked, a.ID)
		if s.notifier != nil {
			if err := s.notifier.Record(domain.Notification{
				UserID:    p.ID,
				Type:      domain.NotifyAchievement,
				Title:     "Achievement unlocked",
				Body:      fmt.Sprintf("%s %s — %s", a.Icon, a.Name, a.Description),
				CreatedAt: now,
			}); err != nil {
				return nil, fmt.Errorf("record achievement notification: %w", err)
			}
		}
	}
	if len(newly) > 0 {
		metrics.AchievementsUnlocked.Add(float64(len(newly)))
	}

	if err := s.store.SaveUserProgram(p); err != nil {
		return nil, fmt.Errorf("save program: %w", err)
	}
	metrics.TaskUpdates.WithLabelValues(string(def.ID)).Inc()

	return &UpdateResult{
		Entry:           *entry,
		Streak:          p.Streaks[def.ID],
		Qualified:       qualified,
		CurrentScore:    timeline.CurrentScore,
		DailyDelta:      delta,
		NewAchievements: newly,
	}, nil
}

// upsertEntry applies one update to the (task, day) log entry, creating it
// if needed. Exactly one entry per task per calendar day survives.
func (s *Service) upsertEntry(p *domain.UserProgram, def domain.TaskDefinition, req UpdateRequest, date, now time.Time) (*domain.TaskLogEntry, error) {
	day := domain.DayOf(date)
	entry := p.Entry(def.ID, day)
	if entry == nil {
		p.TaskLog = append(p.TaskLog, domain.TaskLogEntry{TaskID: def.ID, Date: day})
		entry = &p.TaskLog[len(p.TaskLog)-1]
	}

	switch {
	case req.Meal != nil:
		if def.Kind != domain.KindMealLog {
			return nil, domain.ErrNotMealTask
		}
		entry.History = append(entry.History, domain.MealEntry{
			ID:       uuid.NewString(),
			Score:    clamp(req.Meal.Score, 0, 100),
			Note:     req.Meal.Note,
			LoggedAt: now,
		})
		entry.RawProgress = domain.MealProgress(entry.History)

	case req.CheckedItems != nil:
		if def.Kind != domain.KindChecklist {
			return nil, domain.ErrNotChecklistTask
		}
		entry.CheckedItems = dedupeItems(req.CheckedItems, def.ChecklistItems)
		entry.RawProgress = 100 * float64(len(entry.CheckedItems)) / float64(len(def.ChecklistItems))

	case req.RawProgress != nil:
		// Clamped, never rejected.
		entry.RawProgress = clamp(*req.RawProgress, 0, 200)

	default:
		return nil, domain.ErrMalformedLogEntry
	}

	return entry, nil
}

// DeleteMealEntry removes one meal history entry and recomputes the day's
// progress. This is the only way a logged record shrinks.
func (s *Service) DeleteMealEntry(userID string, taskID domain.TaskID, entryID string) error {
	def, ok := s.catalog.DefinitionOf(taskID)
	if !ok {
		return domain.ErrTaskNotFound
	}
	if def.Kind != domain.KindMealLog {
		return domain.ErrNotMealTask
	}

	p, err := s.store.LoadUserProgram(userID)
	if err != nil {
		return err
	}

	for i := range p.TaskLog {
		e := &p.TaskLog[i]
		if e.TaskID != taskID {
			continue
		}
		for j, m := range e.History {
			if m.ID != entryID {
				continue
			}
			e.History = append(e.History[:j], e.History[j+1:]...)
			e.RawProgress = domain.MealProgress(e.History)
			if err := s.store.SaveUserProgram(p); err != nil {
				return fmt.Errorf("save program: %w", err)
			}
			metrics.MealEntriesDeleted.Inc()
			return nil
		}
	}
	return domain.ErrMealEntryNotFound
}

// ─── Statistics Read Path ───────────────────────────────────────────────────

// Statistics is the full statistics-screen payload.
type Statistics struct {
	Timeline   scoring.Timeline                     `json:"timeline"`
	Streaks    map[domain.TaskID]domain.StreakState `json:"streaks"`
	KeyFactors []domain.KeyFactor                   `json:"key_factors"`
	Rank       domain.RankInfo                      `json:"rank"`
	Aggregates domain.AggregateStats                `json:"aggregates"`
}

// RecomputeStatistics rebuilds everything the statistics screen shows from
// the persisted snapshot. Pure read — the streak cache is reported as
// recomputed values but not rewritten.
func (s *Service) RecomputeStatistics(userID string) (*Statistics, error) {
	return s.RecomputeStatisticsAt(userID, time.Now())
}

// RecomputeStatisticsAt is RecomputeStatistics with an explicit clock.
func (s *Service) RecomputeStatisticsAt(userID string, now time.Time) (*Statistics, error) {
	p, err := s.store.LoadUserProgram(userID)
	if err != nil {
		return nil, err
	}

	timeline := s.buildTimeline(p, now)
	delta := dailyDelta(p, timeline)

	streaks := make(map[domain.TaskID]domain.StreakState, len(s.catalog.All()))
	for _, def := range s.catalog.All() {
		cached := p.Streaks[def.ID]
		cached.Count = streak.Evaluate(def, p.EntriesFor(def.ID), now)
		streaks[def.ID] = cached
	}

	return &Statistics{
		Timeline:   timeline,
		Streaks:    streaks,
		KeyFactors: s.keyFactors(p, streaks),
		Rank:       domain.RankFor(float64(timeline.CurrentScore)),
		Aggregates: achievement.Aggregates(s.catalog, p, float64(timeline.CurrentScore), delta),
	}, nil
}

// buildTimeline wraps the pure builder with instrumentation.
func (s *Service) buildTimeline(p *domain.UserProgram, now time.Time) scoring.Timeline {
	start := time.Now()
	timeline := scoring.Build(s.catalog, p, now)
	metrics.ScoreComputations.Inc()
	metrics.ScoreComputeDuration.Observe(time.Since(start).Seconds())
	return timeline
}

// keyFactors ranks tasks for display: active streaks first (longest first),
// then non-streaking dos by total impact descending, then non-streaking
// don'ts most-negative first.
func (s *Service) keyFactors(p *domain.UserProgram, streaks map[domain.TaskID]domain.StreakState) []domain.KeyFactor {
	var factors []domain.KeyFactor
	for _, def := range s.catalog.All() {
		var total float64
		for _, e := range p.EntriesFor(def.ID) {
			total += scoring.Contribution(def, e)
		}
		factors = append(factors, domain.KeyFactor{
			TaskID:      def.ID,
			Streak:      streaks[def.ID].Count,
			TotalImpact: total,
			Dont:        def.IsDont(),
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		a, b := factors[i], factors[j]
		if (a.Streak > 0) != (b.Streak > 0) {
			return a.Streak > 0
		}
		if a.Streak > 0 {
			return a.Streak > b.Streak
		}
		if a.Dont != b.Dont {
			return !a.Dont
		}
		if a.Dont {
			return a.TotalImpact < b.TotalImpact
		}
		return a.TotalImpact > b.TotalImpact
	})
	return factors
}

// dailyDelta is today's score movement: last raw value minus the previous
// day's (or the baseline on day one).
func dailyDelta(p *domain.UserProgram, t scoring.Timeline) float64 {
	n := len(t.RawSeries)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return t.RawSeries[0] - domain.ClampScore(p.BaselineScore)
	}
	return t.RawSeries[n-1] - t.RawSeries[n-2]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dedupeItems keeps only known checklist items, once each, in catalog order.
func dedupeItems(checked, known []string) []string {
	set := make(map[string]bool, len(checked))
	for _, c := range checked {
		set[c] = true
	}
	var out []string
	for _, k := range known {
		if set[k] {
			out = append(out, k)
		}
	}
	return out
}
