package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrUserNotFound is returned when no program exists for a user id.
	ErrUserNotFound = errors.New("user program not found")

	// ErrTaskNotFound is returned when an explicit request names a task id
	// absent from the catalog. (Unknown ids inside stored logs are skipped
	// silently instead — catalogs evolve.)
	ErrTaskNotFound = errors.New("task not found in catalog")

	// ErrLogEntryNotFound is returned when an update or delete targets a
	// (task, day) with no log entry.
	ErrLogEntryNotFound = errors.New("task log entry not found")

	// ErrMealEntryNotFound is returned when a meal-history delete targets a
	// missing entry id.
	ErrMealEntryNotFound = errors.New("meal history entry not found")

	// ErrMalformedLogEntry marks a stored entry missing its date or
	// progress. Aggregation skips such entries with a warning.
	ErrMalformedLogEntry = errors.New("malformed task log entry")

	// ErrNotMealTask is returned when meal-only operations target a
	// non-meal task.
	ErrNotMealTask = errors.New("task does not keep a meal history")

	// ErrNotChecklistTask is returned when checklist items are submitted
	// for a non-checklist task.
	ErrNotChecklistTask = errors.New("task does not have a checklist")
)
