package repository

import (
	"context"
	"time"

	"travel-assistant-core/internal/model"
)

// Store persists per-user context. Load and Save are atomic per user; the
// orchestrator layers its own per-user write serialization on top.
type Store interface {
	// Load returns the stored context for userID, or ErrNotFound.
	Load(ctx context.Context, userID string) (model.UserContext, error)

	// Save upserts the context keyed by its UserID.
	Save(ctx context.Context, uc model.UserContext) error

	// Count returns the number of stored contexts.
	Count(ctx context.Context) (int, error)

	// Prune removes contexts not updated within the retention window and
	// returns how many were removed.
	Prune(ctx context.Context, retention time.Duration) (int, error)

	// Close releases underlying resources.
	Close() error
}
