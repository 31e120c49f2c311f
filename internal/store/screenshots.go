package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Screenshots is the blob store behind the bot's opaque handles.
type Screenshots struct {
	DB *sql.DB
}

func (s *Screenshots) Save(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty screenshot")
	}
	key := uuid.NewString()
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO screenshots(key, bytes, saved_at) VALUES(?,?,?);`,
		key, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Screenshots) Get(ctx context.Context, key string) ([]byte, error) {
	var b []byte
	err := s.DB.QueryRowContext(ctx, `
SELECT bytes FROM screenshots WHERE key = ?;`, key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}
