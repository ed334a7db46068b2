// Package server assembles the HTTP service from config: storage, token
// issuer, domain services and the router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"primer/internal/app/server/api"
	"primer/internal/app/server/config"
	"primer/internal/app/server/crypto"
	"primer/internal/app/server/metrics"
	"primer/internal/domain/revocation"
	"primer/internal/domain/session"
	"primer/internal/domain/token"
	"primer/internal/domain/user"
	"primer/internal/domain/vault"
	"primer/internal/infrastructure/migration"
	"primer/internal/infrastructure/storage"
	"primer/internal/infrastructure/storage/memory"
	"primer/internal/infrastructure/storage/postgres"
	"primer/internal/security/password"
)

const shutdownTimeout = 10 * time.Second

// Repositories is the storage backend the services run on.
type Repositories struct {
	Users       user.Repository
	Revocations revocation.Repository
	Vault       vault.Repository
	Store       storage.Store
}

func (r Repositories) Close() error { return r.Store.Close() }

// App holds the wired services; Handler is ready to be served.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	repos   Repositories
	Metrics *metrics.Metrics
	Ledger  *revocation.Service
	Handler http.Handler
}

// Migrate brings the postgres schema up to date. It is a no-op for the
// memory backend.
func Migrate(cfg *config.Config) error {
	if cfg.Server.Storage == config.StorageMemory {
		return nil
	}
	if err := migration.NewMigration(cfg.DB.DatabaseURI, migration.DefaultEngine).Up(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenRepositories connects to the configured backend. The schema is
// expected to be current; see Migrate.
func OpenRepositories(ctx context.Context, cfg *config.Config, log *slog.Logger) (Repositories, error) {
	if cfg.Server.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return MemoryRepositories(memory.New()), nil
	}

	db, err := postgres.New(ctx, cfg.DB.DatabaseURI, cfg.DB.MaxConns)
	if err != nil {
		return Repositories{}, err
	}

	return Repositories{
		Users:       postgres.NewUserRepository(db.Pool(), log),
		Revocations: postgres.NewRevocationRepository(db.Pool(), log),
		Vault:       postgres.NewVaultRepository(db, log),
		Store:       db,
	}, nil
}

// MemoryRepositories wraps an in-process store; nothing survives a restart.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Users:       s.Users,
		Revocations: s.Revocations,
		Vault:       s.Vault,
		Store:       s,
	}
}

// NewIssuer picks the token format from config.
func NewIssuer(cfg config.Token) (token.Issuer, error) {
	opts := []token.Option{token.WithIssuer(cfg.Issuer)}
	switch cfg.Format {
	case config.TokenFormatPaseto:
		return token.NewPasetoIssuer(cfg.PasetoKeyHex, opts...)
	default:
		return token.NewJWTIssuer(cfg.JWTSecret, opts...)
	}
}

// NewValidator picks the signup password rules from config.
func NewValidator(cfg config.Security) user.Validator {
	if cfg.PasswordPolicy == config.PasswordPolicyStrict {
		return user.NewStrictPasswordValidator()
	}
	return user.NewPasswordValidator()
}

// New wires services on top of repos.
func New(cfg *config.Config, repos Repositories, log *slog.Logger) (*App, error) {
	hasher, err := password.New(cfg.Security.BcryptCost)
	if err != nil {
		return nil, err
	}
	cipher, err := crypto.NewServerEncryptor(cfg.Vault.Key)
	if err != nil {
		return nil, err
	}
	issuer, err := NewIssuer(cfg.Token)
	if err != nil {
		return nil, err
	}

	ledger := revocation.NewService(repos.Revocations, cfg.Token.AccessTTL, cfg.Token.RefreshTTL, log)
	users := user.NewService(repos.Users, NewValidator(cfg.Security), hasher, log)
	sessions := session.NewService(repos.Users, hasher, issuer, ledger, session.Config{
		AccessTTL:  cfg.Token.AccessTTL,
		RefreshTTL: cfg.Token.RefreshTTL,
	}, log)
	vaults := vault.NewService(repos.Vault, hasher, cipher, log)
	m := metrics.New()

	log.Debug("security settings",
		"bcrypt_cost", hasher.Cost(),
		"password_policy", cfg.Security.PasswordPolicy,
	)

	router := api.New(api.Deps{
		Users:     users,
		Session:   sessions,
		Vault:     vaults,
		DB:        repos.Store,
		Metrics:   m,
		RateLimit: cfg.RateLimit,
	}, log)

	return &App{
		cfg:     cfg,
		log:     log,
		repos:   repos,
		Metrics: m,
		Ledger:  ledger,
		Handler: router,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully and
// releases the storage.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.RunAddress,
		Handler:           a.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.log.Info("server starting", "addr", srv.Addr, "storage", a.cfg.Server.Storage, "token_format", a.cfg.Token.Format)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server stopping", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server failed", "error", err)
		_ = a.repos.Close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server shutdown failed", "error", err)
		return err
	}
	if err := a.repos.Close(); err != nil {
		a.log.Error("storage close failed", "error", err)
	}

	a.log.Info("server stopped")
	return nil
}
