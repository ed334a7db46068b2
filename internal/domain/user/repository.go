package user

import (
	"context"
)

type Repository interface {
	// Create returns errs.ErrConflict when the username or email is taken.
	Create(ctx context.Context, username, email, passwordHash string) (int64, error)
	// FindByUsername returns errs.ErrNotFound for an unknown username.
	FindByUsername(ctx context.Context, username string) (User, error)
}
