package domain

import "time"

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes user-facing messages.
type NotificationType string

const (
	NotifyStreak      NotificationType = "streak"
	NotifyAchievement NotificationType = "achievement"
)

// Notification is a user-facing message queued for the client to display.
// Delivery (push, in-app) is the transport layer's concern.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}
