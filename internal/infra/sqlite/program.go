package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vigor-health/vigor/internal/domain"
)

// dayFormat is the calendar-day key used throughout the schema.
const dayFormat = "2006-01-02"

// ─── Program Store ──────────────────────────────────────────────────────────
// DB implements domain.ProgramStore: the engine hands over full snapshots,
// and Save rewrites the derived rows wholesale inside one transaction.

// LoadUserProgram assembles the full program snapshot for a user.
func (d *DB) LoadUserProgram(userID string) (*domain.UserProgram, error) {
	p := &domain.UserProgram{ID: userID, Streaks: make(map[domain.TaskID]domain.StreakState)}

	var startDay string
	var createdAt int64
	err := d.db.QueryRow(
		`SELECT baseline, start_date, created_at FROM users WHERE id = ?`, userID,
	).Scan(&p.BaselineScore, &startDay, &createdAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	p.StartDate, err = time.ParseInLocation(dayFormat, startDay, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}
	p.CreatedAt = time.Unix(createdAt, 0)

	if err := d.loadTaskLog(p); err != nil {
		return nil, err
	}
	if err := d.loadStreaks(p); err != nil {
		return nil, err
	}
	if err := d.loadUnlocked(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (d *DB) loadTaskLog(p *domain.UserProgram) error {
	rows, err := d.db.Query(
		`SELECT task_id, day, raw_progress, checked_items
		 FROM task_log WHERE user_id = ? ORDER BY day, task_id`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("load task log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.TaskLogEntry
		var day, items string
		if err := rows.Scan(&e.TaskID, &day, &e.RawProgress, &items); err != nil {
			return err
		}
		e.Date, err = time.ParseInLocation(dayFormat, day, time.UTC)
		if err != nil {
			return fmt.Errorf("parse log day: %w", err)
		}
		if items != "" {
			e.CheckedItems = strings.Split(items, ",")
		}
		p.TaskLog = append(p.TaskLog, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return d.loadMealHistory(p)
}

func (d *DB) loadMealHistory(p *domain.UserProgram) error {
	rows, err := d.db.Query(
		`SELECT id, task_id, day, score, note, logged_at
		 FROM meal_history WHERE user_id = ? ORDER BY logged_at`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("load meal history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.MealEntry
		var taskID domain.TaskID
		var day string
		var loggedAt int64
		if err := rows.Scan(&m.ID, &taskID, &day, &m.Score, &m.Note, &loggedAt); err != nil {
			return err
		}
		m.LoggedAt = time.Unix(loggedAt, 0)
		date, err := time.ParseInLocation(dayFormat, day, time.UTC)
		if err != nil {
			return fmt.Errorf("parse meal day: %w", err)
		}
		if e := p.Entry(taskID, date); e != nil {
			e.History = append(e.History, m)
		}
	}
	return rows.Err()
}

func (d *DB) loadStreaks(p *domain.UserProgram) error {
	rows, err := d.db.Query(
		`SELECT task_id, count, last_update, last_notified
		 FROM streaks WHERE user_id = ?`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("load streaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID domain.TaskID
		var s domain.StreakState
		var lastUpdate, lastNotified sql.NullInt64
		if err := rows.Scan(&taskID, &s.Count, &lastUpdate, &lastNotified); err != nil {
			return err
		}
		if lastUpdate.Valid {
			s.LastUpdate = time.Unix(lastUpdate.Int64, 0)
		}
		if lastNotified.Valid {
			s.LastNotified = time.Unix(lastNotified.Int64, 0)
		}
		p.Streaks[taskID] = s
	}
	return rows.Err()
}

func (d *DB) loadUnlocked(p *domain.UserProgram) error {
	rows, err := d.db.Query(
		`SELECT id FROM achievements WHERE user_id = ? ORDER BY unlocked_at, id`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		p.Unlocked = append(p.Unlocked, id)
	}
	return rows.Err()
}

// SaveUserProgram persists the full snapshot. Log, meal, and streak rows are
// rewritten; achievements are insert-or-ignore so the unlocked set only ever
// grows.
func (d *DB) SaveUserProgram(p *domain.UserProgram) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO users (id, baseline, start_date, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET baseline=excluded.baseline`,
		p.ID, p.BaselineScore, p.StartDate.UTC().Format(dayFormat), p.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	for _, table := range []string{"task_log", "meal_history", "streaks"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE user_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, e := range p.TaskLog {
		day := e.Date.UTC().Format(dayFormat)
		_, err := tx.Exec(
			`INSERT INTO task_log (user_id, task_id, day, raw_progress, checked_items)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID, string(e.TaskID), day, e.RawProgress, strings.Join(e.CheckedItems, ","),
		)
		if err != nil {
			return fmt.Errorf("save log entry: %w", err)
		}
		for _, m := range e.History {
			_, err := tx.Exec(
				`INSERT INTO meal_history (id, user_id, task_id, day, score, note, logged_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				m.ID, p.ID, string(e.TaskID), day, m.Score, m.Note, m.LoggedAt.Unix(),
			)
			if err != nil {
				return fmt.Errorf("save meal entry: %w", err)
			}
		}
	}

	// Deterministic write order for the streak cache.
	taskIDs := make([]string, 0, len(p.Streaks))
	for id := range p.Streaks {
		taskIDs = append(taskIDs, string(id))
	}
	sort.Strings(taskIDs)
	for _, id := range taskIDs {
		s := p.Streaks[domain.TaskID(id)]
		_, err := tx.Exec(
			`INSERT INTO streaks (user_id, task_id, count, last_update, last_notified)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID, id, s.Count, nullableUnix(s.LastUpdate), nullableUnix(s.LastNotified),
		)
		if err != nil {
			return fmt.Errorf("save streak: %w", err)
		}
	}

	for _, id := range p.Unlocked {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO achievements (user_id, id, unlocked_at, notified)
			 VALUES (?, ?, ?, 0)`,
			p.ID, id, time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("save achievement: %w", err)
		}
	}

	return tx.Commit()
}

// ─── Achievements ───────────────────────────────────────────────────────────

// ListUnlockedAchievements returns a user's unlocked achievements.
func (d *DB) ListUnlockedAchievements(userID string) ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT id, unlocked_at, notified FROM achievements
		 WHERE user_id = ? ORDER BY unlocked_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.UnlockedAchievement
	for rows.Next() {
		var a domain.UnlockedAchievement
		var unlockedAt int64
		if err := rows.Scan(&a.ID, &unlockedAt, &a.Notified); err != nil {
			return nil, err
		}
		a.UnlockedAt = time.Unix(unlockedAt, 0)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// ─── Notifications ──────────────────────────────────────────────────────────

// Record inserts a notification. Satisfies the tracker's Notifier.
func (d *DB) Record(n domain.Notification) error {
	_, err := d.InsertNotification(n)
	return err
}

// InsertNotification creates a new notification.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (user_id, type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPendingNotifications returns a user's unshown notifications.
func (d *DB) ListPendingNotifications(userID string, limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, type, title, body, created_at, shown
		 FROM notifications WHERE user_id = ? AND shown = 0
		 ORDER BY created_at DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id int64) error {
	_, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
