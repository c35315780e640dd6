package database

import "time"

// Dispatch is the outcome of one chat message sent to an AI endpoint.
type Dispatch struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	UserID int64 `db:"user_id"`
	ChatID int64 `db:"chat_id"`
	// RequestedModel is the session selection; Model is what actually served it.
	RequestedModel string `db:"requested_model"`
	Model          string `db:"model"`
	Fallback       bool   `db:"fallback"`
	Success        bool   `db:"success"`
	DurationMS     int64  `db:"duration_ms"`
}

// ModelUsage aggregates dispatches per serving model.
type ModelUsage struct {
	Model         string `db:"model"`
	Requests      int64  `db:"requests"`
	Failures      int64  `db:"failures"`
	Fallbacks     int64  `db:"fallbacks"`
	AvgDurationMS int64  `db:"avg_duration_ms"`
}
