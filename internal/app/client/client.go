package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"primer/internal/app/client/config"
)

// Storage holds the cached session between command runs.
type Storage interface {
	SaveSession(sess Session) error
	GetSession() (Session, error)
	UpdateAccess(token string, expiresAt time.Time) error
	ClearAccess() error
	DeleteSession() error
	Close() error
}

type App struct {
	config *config.Config
	log    *slog.Logger
	api    *httpClient
	store  Storage
	now    func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	store, err := NewSQLiteStorage(cfg.SessionPath)
	if err != nil {
		return nil, err
	}

	return NewWithStorage(cfg, store, log), nil
}

// NewWithStorage builds an App around an already opened store.
func NewWithStorage(cfg *config.Config, store Storage, log *slog.Logger) *App {
	return &App{
		config: cfg,
		log:    log.With("component", "client"),
		api:    NewHTTPClient(cfg.Server, log),
		store:  store,
		now:    time.Now,
	}
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

func (a *App) Signup(ctx context.Context, username, email, password string) (int64, error) {
	return a.api.Signup(ctx, username, email, password)
}

// Signin stores both tokens locally.
func (a *App) Signin(ctx context.Context, username, password string) error {
	pair, err := a.api.Signin(ctx, username, password)
	if err != nil {
		return err
	}

	return a.store.SaveSession(Session{
		Username:         username,
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	})
}

// Refresh replaces the cached access token. The refresh token is kept.
func (a *App) Refresh(ctx context.Context) (time.Time, error) {
	sess, err := a.store.GetSession()
	if err != nil {
		return time.Time{}, err
	}

	at, err := a.api.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			a.log.Info("refresh token rejected, dropping local session", "detail", apiErr.Detail)
			_ = a.store.DeleteSession()
		}
		return time.Time{}, err
	}

	if err := a.store.UpdateAccess(at.AccessToken, at.AccessExpiresAt); err != nil {
		return time.Time{}, err
	}
	return at.AccessExpiresAt, nil
}

// Logout revokes the access token on the server and forgets it locally.
// The refresh token stays valid until it expires.
func (a *App) Logout(ctx context.Context) error {
	sess, err := a.store.GetSession()
	if err != nil {
		return err
	}

	if sess.HasAccess(a.now()) {
		if err := a.api.Logout(ctx, sess.AccessToken); err != nil {
			return err
		}
	}
	return a.store.ClearAccess()
}

// Forget drops the local session entirely.
func (a *App) Forget() error {
	err := a.store.DeleteSession()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	return err
}

func (a *App) Me(ctx context.Context) (Me, Session, error) {
	sess, tok, err := a.accessToken(ctx)
	if err != nil {
		return Me{}, Session{}, err
	}
	me, err := a.api.Me(ctx, tok)
	return me, sess, err
}

func (a *App) SetVaultPassword(ctx context.Context, vaultPassword string) error {
	return a.withAccess(ctx, func(tok string) error {
		return a.api.SetVaultPassword(ctx, tok, vaultPassword)
	})
}

func (a *App) Unlock(ctx context.Context, vaultPassword string) error {
	return a.withAccess(ctx, func(tok string) error {
		return a.api.Unlock(ctx, tok, vaultPassword)
	})
}

func (a *App) AddEntry(ctx context.Context, e NewEntry) (id int64, err error) {
	err = a.withAccess(ctx, func(tok string) error {
		id, err = a.api.AddEntry(ctx, tok, e)
		return err
	})
	return id, err
}

func (a *App) ListEntries(ctx context.Context) (entries []Entry, err error) {
	err = a.withAccess(ctx, func(tok string) error {
		entries, err = a.api.ListEntries(ctx, tok)
		return err
	})
	return entries, err
}

func (a *App) ViewEntry(ctx context.Context, id int64, vaultPassword string) (e Entry, err error) {
	err = a.withAccess(ctx, func(tok string) error {
		e, err = a.api.ViewEntry(ctx, tok, id, vaultPassword)
		return err
	})
	return e, err
}

func (a *App) UpdateEntry(ctx context.Context, id int64, p EntryPatch) error {
	if p.Secret == nil || *p.Secret == "" {
		return errors.New("секрет обязателен при обновлении записи")
	}
	return a.withAccess(ctx, func(tok string) error {
		return a.api.UpdateEntry(ctx, tok, id, p)
	})
}

func (a *App) DeleteEntry(ctx context.Context, id int64) error {
	return a.withAccess(ctx, func(tok string) error {
		return a.api.DeleteEntry(ctx, tok, id)
	})
}

func (a *App) withAccess(ctx context.Context, fn func(token string) error) error {
	_, tok, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	return fn(tok)
}

// accessToken returns the cached access token, refreshing it first when it
// is missing or expired.
func (a *App) accessToken(ctx context.Context) (Session, string, error) {
	sess, err := a.store.GetSession()
	if err != nil {
		return Session{}, "", err
	}
	if sess.HasAccess(a.now()) {
		return sess, sess.AccessToken, nil
	}

	a.log.Debug("access token missing or expired, refreshing")
	if _, err := a.Refresh(ctx); err != nil {
		return Session{}, "", fmt.Errorf("не удалось обновить токен: %w", err)
	}

	sess, err = a.store.GetSession()
	if err != nil {
		return Session{}, "", err
	}
	return sess, sess.AccessToken, nil
}
