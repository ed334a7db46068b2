package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"primer/internal/domain/errs"
	"primer/internal/domain/revocation"
	"primer/internal/domain/token"
	"primer/internal/domain/user"
)

type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (user.User, error)
}

type Hasher interface {
	Verify(plaintext, hash string) bool
	Burn(plaintext string)
}

type Servicer interface {
	Signin(ctx context.Context, username, password string) (Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (token.Issued, error)
	Authenticate(ctx context.Context, accessToken string) (Identity, error)
	Logout(ctx context.Context, id Identity) error
}

// Config holds the token lifetimes.
type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Service struct {
	users  UserFinder
	hasher Hasher
	issuer token.Issuer
	ledger revocation.Servicer
	cfg    Config
	log    *slog.Logger
}

func NewService(users UserFinder, hasher Hasher, issuer token.Issuer, ledger revocation.Servicer, cfg Config, log *slog.Logger) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		ledger: ledger,
		cfg:    cfg,
		log:    log.With("component", "session_service"),
	}
}

// Signin checks the login password and issues an access/refresh pair.
// Unknown user and wrong password both yield errs.ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, username, password string) (Tokens, error) {
	u, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		s.hasher.Burn(password)
		s.log.Info("signin rejected", "reason", "user_not_found")
		return Tokens{}, errs.ErrInvalidCredentials
	case err != nil:
		return Tokens{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		s.log.Info("signin rejected", "reason", "password_mismatch", "user_id", u.ID)
		return Tokens{}, errs.ErrInvalidCredentials
	}

	access, err := s.issuer.Issue(u.ID, token.TypeAccess, s.cfg.AccessTTL, true)
	if err != nil {
		return Tokens{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.issuer.Issue(u.ID, token.TypeRefresh, s.cfg.RefreshTTL, false)
	if err != nil {
		return Tokens{}, fmt.Errorf("issue refresh token: %w", err)
	}

	s.log.Info("user signed in", "user_id", u.ID)
	return Tokens{
		AccessToken:      access.Token,
		RefreshToken:     refresh.Token,
		AccessExpiresAt:  access.Claims.ExpiresAt,
		RefreshExpiresAt: refresh.Claims.ExpiresAt,
	}, nil
}

// Refresh issues a new access token. The refresh token is not rotated and
// stays usable until it expires or is revoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (token.Issued, error) {
	claims, err := s.verify(ctx, refreshToken, token.TypeRefresh)
	if err != nil {
		return token.Issued{}, err
	}

	access, err := s.issuer.Issue(claims.Subject, token.TypeAccess, s.cfg.AccessTTL, false)
	if err != nil {
		return token.Issued{}, fmt.Errorf("issue access token: %w", err)
	}

	s.log.Debug("access token refreshed", "user_id", claims.Subject)
	return access, nil
}

func (s *Service) Authenticate(ctx context.Context, accessToken string) (Identity, error) {
	claims, err := s.verify(ctx, accessToken, token.TypeAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject, Claims: claims}, nil
}

// Logout revokes the access token behind id. The ledger write is the last
// step; if it fails the token stays usable and the error is returned.
func (s *Service) Logout(ctx context.Context, id Identity) error {
	if id.Claims.Type != token.TypeAccess {
		return fmt.Errorf("%w: logout requires an access token", errs.ErrInvalidSignature)
	}

	userID := id.UserID
	err := s.ledger.Revoke(ctx, revocation.Record{
		TokenID:   id.Claims.ID,
		TokenType: token.TypeAccess,
		UserID:    &userID,
		ExpiresAt: id.Claims.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("user logged out", "user_id", id.UserID)
	return nil
}

func (s *Service) verify(ctx context.Context, raw string, want token.Type) (token.Claims, error) {
	claims, err := s.issuer.Verify(raw)
	if err != nil {
		return token.Claims{}, err
	}
	if claims.Type != want {
		s.log.Debug("token type mismatch", "want", want, "got", claims.Type)
		return token.Claims{}, fmt.Errorf("%w: expected %s token", errs.ErrInvalidSignature, want)
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.ID)
	if err != nil {
		return token.Claims{}, err
	}
	if revoked {
		return token.Claims{}, errs.ErrTokenRevoked
	}
	return claims, nil
}
