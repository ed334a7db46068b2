package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"primer/internal/domain/errs"
	"primer/internal/domain/token"
)

type Servicer interface {
	Revoke(ctx context.Context, rec Record) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Prune(ctx context.Context) (int64, error)
}

// Service is the revocation ledger. It holds no in-process state: every
// lookup goes to the repository so a revoke is visible to the next request.
type Service struct {
	repo   Repository
	maxTTL map[token.Type]time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// NewService builds a ledger. accessTTL and refreshTTL bound the lifetime of
// records whose expiry was not supplied.
func NewService(repo Repository, accessTTL, refreshTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		maxTTL: map[token.Type]time.Duration{
			token.TypeAccess:  accessTTL,
			token.TypeRefresh: refreshTTL,
		},
		now: time.Now,
		log: log.With("component", "revocation_ledger"),
	}
}

// Revoke records rec.TokenID. Revoking an id twice is not an error.
func (s *Service) Revoke(ctx context.Context, rec Record) error {
	if rec.TokenID == "" {
		return errs.Invalid("token id is required")
	}
	if !rec.TokenType.Valid() {
		return errs.Invalid(fmt.Sprintf("unknown token type %q", rec.TokenType))
	}

	if rec.RevokedAt.IsZero() {
		rec.RevokedAt = s.now().UTC()
	}
	if rec.ExpiresAt.IsZero() {
		rec.ExpiresAt = rec.RevokedAt.Add(s.maxTTL[rec.TokenType])
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.log.Error("failed to revoke token", "token_id", rec.TokenID, "type", rec.TokenType, "error", err)
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Debug("token revoked", "token_id", rec.TokenID, "type", rec.TokenType)
	return nil
}

func (s *Service) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.repo.Exists(ctx, tokenID)
	if err != nil {
		s.log.Error("failed to check revocation", "token_id", tokenID, "error", err)
		if errors.Is(err, errs.ErrStorageUnavailable) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	return revoked, nil
}

// Prune deletes records whose token has expired. An expired token fails
// verification on its own, so dropping its record cannot resurrect it.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("prune ledger: %w", err)
	}

	s.log.Info("revocation ledger pruned", "deleted", n)
	return n, nil
}
