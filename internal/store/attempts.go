package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
)

// ErrDuplicateAttempt means an attempt for (user_id, job_id) already exists;
// the caller should treat the job as already applied.
var ErrDuplicateAttempt = errors.New("attempt already recorded for user/job")

// Attempts is the sqlite-backed application-history store.
type Attempts struct {
	DB *sql.DB
}

func (s *Attempts) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	var one int
	err := s.DB.QueryRowContext(ctx, `
SELECT 1 FROM attempts WHERE user_id = ? AND job_id = ? LIMIT 1;`,
		userID, jobID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Attempts) Append(ctx context.Context, a domain.ApplicationAttempt) error {
	if !a.Status.Valid() {
		return fmt.Errorf("invalid attempt status %q", a.Status)
	}

	shotsB, _ := json.Marshal(a.Screenshots)
	logsB, _ := json.Marshal(a.DebugLogs)

	var submittedAt any
	if a.SubmittedAt != nil {
		submittedAt = a.SubmittedAt.UTC().Format(time.RFC3339)
	}

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
INSERT INTO attempts(application_id, user_id, job_id, job_title, company, apply_link,
                     status, message, tool_used, screenshots, debug_logs, submitted_at, created_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		a.ApplicationID, a.UserID, a.JobID, a.JobTitle, a.Company, a.ApplyLink,
		string(a.Status), a.Message, a.ToolUsed, string(shotsB), string(logsB),
		submittedAt, created.UTC().Format(time.RFC3339),
	)
	if err != nil {
		// modernc/sqlite reports the violated index by name.
		if strings.Contains(err.Error(), "idx_attempts_user_job") ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return ErrDuplicateAttempt
		}
		return err
	}
	return nil
}

// CountToday counts attempts created since UTC midnight; the daily quota is
// day-scoped in UTC.
func (s *Attempts) CountToday(ctx context.Context, userID string) (int, error) {
	start := time.Now().UTC().Truncate(24 * time.Hour).Format(time.RFC3339)

	var n int
	err := s.DB.QueryRowContext(ctx, `
SELECT COUNT(*) FROM attempts WHERE user_id = ? AND created_at >= ?;`,
		userID, start).Scan(&n)
	return n, err
}

func (s *Attempts) ListRecent(ctx context.Context, userID string, limit int) ([]domain.ApplicationAttempt, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.DB.QueryContext(ctx, `
SELECT application_id, user_id, job_id, job_title, company, apply_link,
       status, message, tool_used, screenshots, debug_logs, submitted_at, created_at
FROM attempts
WHERE user_id = ?
ORDER BY created_at DESC
LIMIT ?;`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ApplicationAttempt
	for rows.Next() {
		var a domain.ApplicationAttempt
		var status, shotsJSON, logsJSON, createdStr string
		var submittedStr sql.NullString
		if err := rows.Scan(&a.ApplicationID, &a.UserID, &a.JobID, &a.JobTitle, &a.Company,
			&a.ApplyLink, &status, &a.Message, &a.ToolUsed, &shotsJSON, &logsJSON,
			&submittedStr, &createdStr); err != nil {
			return nil, err
		}
		a.Status = domain.AttemptStatus(status)
		_ = json.Unmarshal([]byte(shotsJSON), &a.Screenshots)
		_ = json.Unmarshal([]byte(logsJSON), &a.DebugLogs)
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		if submittedStr.Valid {
			if t, err := time.Parse(time.RFC3339, submittedStr.String); err == nil {
				a.SubmittedAt = &t
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CleanupOldAttempts drops attempt history older than three months.
// created_at is stored as RFC3339, so the cutoff must use the same layout;
// plain datetime() output compares wrong on the boundary day.
func CleanupOldAttempts(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM attempts
WHERE created_at < strftime('%Y-%m-%dT%H:%M:%SZ', 'now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old attempts: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
