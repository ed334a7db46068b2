package revocation

import (
	"context"
	"time"
)

// Repository persists revocation records keyed by token id.
type Repository interface {
	// Insert must be a single duplicate-tolerant write (unique-key upsert).
	Insert(ctx context.Context, rec Record) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
