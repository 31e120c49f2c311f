package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"autoapply-engine/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// Users reads and writes applicant profiles and auto-apply settings.
type Users struct {
	DB *sql.DB
}

func (s *Users) Get(ctx context.Context, id string) (domain.User, error) {
	row := s.DB.QueryRowContext(ctx, `
SELECT id, enabled, settings, profile, base_resume FROM users WHERE id = ?;`, id)
	return scanUser(row)
}

func (s *Users) EnabledUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, enabled, settings, profile, base_resume FROM users WHERE enabled = 1;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Users) Upsert(ctx context.Context, u domain.User) error {
	settingsB, _ := json.Marshal(u.Settings)
	profileB, _ := json.Marshal(u.Profile)

	enabled := 0
	if u.Settings.Enabled {
		enabled = 1
	}

	_, err := s.DB.ExecContext(ctx, `
INSERT INTO users(id, enabled, settings, profile, base_resume)
VALUES(?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  enabled = excluded.enabled,
  settings = excluded.settings,
  profile = excluded.profile,
  base_resume = excluded.base_resume;`,
		u.ID, enabled, string(settingsB), string(profileB), u.BaseResume)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (domain.User, error) {
	var u domain.User
	var enabled int
	var settingsJSON, profileJSON string

	err := r.Scan(&u.ID, &enabled, &settingsJSON, &profileJSON, &u.BaseResume)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	if err != nil {
		return u, err
	}

	if err := json.Unmarshal([]byte(settingsJSON), &u.Settings); err != nil {
		return u, fmt.Errorf("user %s settings: %w", u.ID, err)
	}
	if err := json.Unmarshal([]byte(profileJSON), &u.Profile); err != nil {
		return u, fmt.Errorf("user %s profile: %w", u.ID, err)
	}
	u.Settings.Enabled = enabled == 1
	return u, nil
}
