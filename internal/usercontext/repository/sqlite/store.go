package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"travel-assistant-core/internal/model"
	"travel-assistant-core/internal/usercontext/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_contexts (
	user_id    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_contexts_updated ON user_contexts(updated_at);
`

// Store is a durable context store on SQLite. Contexts are stored as JSON
// rows; per-user atomicity comes from single-row upserts.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// SQLite handles one writer at a time; cap the pool accordingly.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the stored context for userID, or repository.ErrNotFound.
func (s *Store) Load(ctx context.Context, userID string) (model.UserContext, error) {
	if userID == "" {
		return model.UserContext{}, repository.ErrEmptyUserID
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM user_contexts WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserContext{}, repository.ErrNotFound
	}
	if err != nil {
		return model.UserContext{}, fmt.Errorf("failed to load context: %w", err)
	}

	var uc model.UserContext
	if err := json.Unmarshal([]byte(data), &uc); err != nil {
		return model.UserContext{}, fmt.Errorf("failed to decode context for %s: %w", userID, err)
	}
	return uc, nil
}

// Save upserts the context keyed by its UserID.
func (s *Store) Save(ctx context.Context, uc model.UserContext) error {
	if uc.UserID == "" {
		return repository.ErrEmptyUserID
	}

	data, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("failed to encode context for %s: %w", uc.UserID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_contexts (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		uc.UserID, string(data), uc.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save context for %s: %w", uc.UserID, err)
	}
	return nil
}

// Count returns the number of stored contexts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_contexts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count contexts: %w", err)
	}
	return n, nil
}

// Prune removes contexts not updated within the retention window.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention).Unix()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM user_contexts WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune contexts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
