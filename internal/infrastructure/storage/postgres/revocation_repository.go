package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"primer/internal/domain/revocation"
)

type RevocationRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRevocationRepository(pool *pgxpool.Pool, log *slog.Logger) *RevocationRepository {
	return &RevocationRepository{
		pool: pool,
		log:  log.With("component", "revocation_repository"),
	}
}

// Insert is a single duplicate-tolerant write; the primary key on jti is the guard.
func (r *RevocationRepository) Insert(ctx context.Context, rec revocation.Record) error {
	const query = `
		INSERT INTO token_blocklist (jti, token_type, user_id, revoked_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (jti) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		rec.TokenID, string(rec.TokenType), rec.UserID, rec.RevokedAt, rec.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert revocation: %w", translate(err))
	}
	return nil
}

func (r *RevocationRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM token_blocklist WHERE jti = $1)`, tokenID).Scan(&exists)
	if err != nil {
		return false, translate(err)
	}
	return exists, nil
}

func (r *RevocationRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM token_blocklist WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired revocations: %w", translate(err))
	}

	r.log.Debug("expired revocations deleted", "count", tag.RowsAffected())
	return tag.RowsAffected(), nil
}
