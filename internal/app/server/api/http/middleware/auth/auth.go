package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"primer/internal/app/server/api/http/apierr"
	"primer/internal/domain/session"
)

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (session.Identity, error)
}

type Auth struct {
	api     huma.API
	session Authenticator
	log     *slog.Logger
}

func New(api huma.API, session Authenticator, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const identityKey contextKey = "identity"

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := BearerToken(ctx.Header("Authorization"))
		if !ok {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			_ = huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		// Валидируем токен
		id, err := a.session.Authenticate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("token rejected", "path", ctx.URL().Path, "error", err)
			writeErr(a.api, ctx, apierr.From(a.log, err))
			return
		}

		next(huma.WithContext(ctx, WithIdentity(ctx.Context(), id)))
	}
}

func writeErr(api huma.API, ctx huma.Context, err error) {
	if se, ok := err.(huma.StatusError); ok {
		_ = huma.WriteErr(api, ctx, se.GetStatus(), se.Error())
		return
	}
	_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal error")
}

func WithIdentity(ctx context.Context, id session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func GetIdentity(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(identityKey).(session.Identity)
	return id, ok
}

func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := GetIdentity(ctx)
	return id.UserID, ok
}
