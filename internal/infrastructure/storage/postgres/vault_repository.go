package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"primer/internal/domain/errs"
	"primer/internal/domain/vault"
)

type VaultRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewVaultRepository(db *Storage, log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		db:  db,
		log: log.With("component", "vault_repository"),
	}
}

func (r *VaultRepository) UpsertCredential(ctx context.Context, userID int64, passwordHash string, setAt time.Time) error {
	const query = `
		INSERT INTO vault_passwords (user_id, password_hash, set_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET password_hash = EXCLUDED.password_hash, set_at = EXCLUDED.set_at`

	if _, err := r.db.Pool().Exec(ctx, query, userID, passwordHash, setAt); err != nil {
		return fmt.Errorf("upsert vault password: %w", translate(err))
	}
	return nil
}

func (r *VaultRepository) GetCredential(ctx context.Context, userID int64) (vault.Credential, error) {
	var c vault.Credential
	err := r.db.Pool().QueryRow(ctx,
		`SELECT user_id, password_hash, set_at FROM vault_passwords WHERE user_id = $1`, userID).
		Scan(&c.UserID, &c.PasswordHash, &c.SetAt)
	if err != nil {
		return vault.Credential{}, translate(err)
	}
	return c, nil
}

func (r *VaultRepository) UpsertEntry(ctx context.Context, e vault.Entry) (int64, error) {
	const query = `
		INSERT INTO vault (user_id, domain, account_name, secret, url, notes, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		ON CONFLICT (user_id, domain)
		DO UPDATE SET
			account_name = EXCLUDED.account_name,
			secret = EXCLUDED.secret,
			url = EXCLUDED.url,
			notes = EXCLUDED.notes
		RETURNING id`

	var id int64
	err := r.db.Pool().QueryRow(ctx, query,
		e.UserID, e.Domain, e.AccountName, e.Secret, e.URL, e.Notes, e.CreatedAt).Scan(&id)
	if err != nil {
		r.log.Error("failed to upsert vault entry", "user_id", e.UserID, "error", err)
		return 0, fmt.Errorf("upsert vault entry: %w", translate(err))
	}
	return id, nil
}

func (r *VaultRepository) GetEntry(ctx context.Context, id int64) (vault.Entry, error) {
	const query = `
		SELECT id, user_id, domain, account_name, secret,
		       COALESCE(url, ''), COALESCE(notes, ''), created_at
		FROM vault
		WHERE id = $1`

	var e vault.Entry
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.Domain, &e.AccountName, &e.Secret, &e.URL, &e.Notes, &e.CreatedAt)
	if err != nil {
		return vault.Entry{}, translate(err)
	}
	return e, nil
}

func (r *VaultRepository) ListEntries(ctx context.Context, userID int64) ([]vault.Summary, error) {
	const query = `
		SELECT id, domain, account_name, COALESCE(url, ''), COALESCE(notes, ''), created_at
		FROM vault
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list vault entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list vault entries: %w", translate(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (vault.Summary, error) {
		var s vault.Summary
		err := row.Scan(&s.ID, &s.Domain, &s.AccountName, &s.URL, &s.Notes, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault entries: %w", translate(err))
	}
	return out, nil
}

// UpdateEntry keeps NULL patch fields at their stored value (COALESCE).
func (r *VaultRepository) UpdateEntry(ctx context.Context, id, userID int64, p vault.Patch) error {
	const query = `
		UPDATE vault
		SET domain = COALESCE($1, domain),
		    account_name = COALESCE($2, account_name),
		    secret = COALESCE($3, secret),
		    url = COALESCE($4, url),
		    notes = COALESCE($5, notes)
		WHERE id = $6 AND user_id = $7`

	tag, err := r.db.Pool().Exec(ctx, query, p.Domain, p.AccountName, p.Secret, p.URL, p.Notes, id, userID)
	return singleRow(tag, err, "update vault entry")
}

func (r *VaultRepository) DeleteEntry(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM vault WHERE id = $1 AND user_id = $2`, id, userID)
	return singleRow(tag, err, "delete vault entry")
}

// singleRow reports ErrNotFound unless the statement touched exactly one
// row. The owner filter lives in the WHERE clause, so a foreign id and a
// missing id look the same here.
func singleRow(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	if tag.RowsAffected() != 1 {
		return errs.ErrNotFound
	}
	return nil
}
