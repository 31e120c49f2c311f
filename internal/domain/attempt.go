package domain

import "time"

// AttemptStatus is the fixed set of states an application attempt moves
// through. Linear, no cycles; the last three are terminal.
type AttemptStatus string

const (
	StatusInitial              AttemptStatus = "initial"
	StatusNavigated            AttemptStatus = "navigated"
	StatusPlatformDetected     AttemptStatus = "platform_detected"
	StatusFormFilled           AttemptStatus = "form_filled"
	StatusSubmitAttempted      AttemptStatus = "submit_attempted"
	StatusConfirmed            AttemptStatus = "confirmed"
	StatusSubmittedUnconfirmed AttemptStatus = "submitted_unconfirmed"
	StatusFailed               AttemptStatus = "failed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s AttemptStatus) Valid() bool {
	switch s {
	case StatusInitial, StatusNavigated, StatusPlatformDetected, StatusFormFilled,
		StatusSubmitAttempted, StatusConfirmed, StatusSubmittedUnconfirmed, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s ends the attempt.
func (s AttemptStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusSubmittedUnconfirmed || s == StatusFailed
}

// ApplicationAttempt is the record of one submission try for (user, job).
// Never mutated after a terminal status is reached; its existence is the
// idempotency guard the orchestrator consults.
type ApplicationAttempt struct {
	ApplicationID string        `json:"application_id"`
	UserID        string        `json:"user_id"`
	JobID         string        `json:"job_id"`
	JobTitle      string        `json:"job_title"`
	Company       string        `json:"company"`
	ApplyLink     string        `json:"apply_link"`
	Status        AttemptStatus `json:"status"`
	Message       string        `json:"message,omitempty"` // failure reason / terminal note
	ToolUsed      string        `json:"tool_used"`         // automation engine name
	Screenshots   []string      `json:"screenshots"`       // 0..3 opaque store handles
	DebugLogs     []string      `json:"debug_logs"`        // timestamped step lines
	SubmittedAt   *time.Time    `json:"submitted_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
