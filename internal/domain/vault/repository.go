package vault

import (
	"context"
	"time"
)

// Repository persists vault credentials and entries.
//
// UpsertCredential and UpsertEntry must be single atomic writes keyed on
// user_id and (user_id, domain); the storage constraint is the guard.
type Repository interface {
	UpsertCredential(ctx context.Context, userID int64, passwordHash string, setAt time.Time) error
	GetCredential(ctx context.Context, userID int64) (Credential, error)

	UpsertEntry(ctx context.Context, e Entry) (int64, error)
	GetEntry(ctx context.Context, id int64) (Entry, error)
	ListEntries(ctx context.Context, userID int64) ([]Summary, error)
	// UpdateEntry applies p (Secret already sealed) to the row owned by userID.
	UpdateEntry(ctx context.Context, id, userID int64, p Patch) error
	DeleteEntry(ctx context.Context, id, userID int64) error
}
