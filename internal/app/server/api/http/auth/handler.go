package auth

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"primer/internal/app/server/api/http/apierr"
	"primer/internal/app/server/api/http/middleware"
	authmw "primer/internal/app/server/api/http/middleware/auth"
	"primer/internal/app/server/metrics"
	"primer/internal/domain/errs"
	"primer/internal/domain/session"
	"primer/internal/domain/user"
)

type Handler struct {
	users   user.Servicer
	session session.Servicer
	metrics *metrics.Metrics
	log     *slog.Logger
	mw      middleware.Set
}

func NewHandler(users user.Servicer, session session.Servicer, m *metrics.Metrics, log *slog.Logger, mw middleware.Set) *Handler {
	return &Handler{
		users:   users,
		session: session,
		metrics: m,
		log:     log.With("component", "auth_handler"),
		mw:      mw,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.signinOp(), h.signin)
	huma.Register(api, h.refreshOp(), h.refresh)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) signup(ctx context.Context, input *signupInput) (*signupOutput, error) {
	userID, err := h.users.Register(ctx, input.Body.Username, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	h.metrics.Auth(metrics.Signup)
	return &signupOutput{
		Body: SignupResponse{UserID: userID, Message: "user created"},
	}, nil
}

func (h *Handler) signin(ctx context.Context, input *signinInput) (*signinOutput, error) {
	tokens, err := h.session.Signin(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			h.metrics.Auth(metrics.SigninFailed)
		}
		return nil, apierr.From(h.log, err)
	}

	h.metrics.Auth(metrics.SigninOK)
	return &signinOutput{
		Body: SigninResponse{
			AccessToken:      tokens.AccessToken,
			RefreshToken:     tokens.RefreshToken,
			TokenType:        "Bearer",
			AccessExpiresAt:  tokens.AccessExpiresAt,
			RefreshExpiresAt: tokens.RefreshExpiresAt,
		},
	}, nil
}

func (h *Handler) refresh(ctx context.Context, input *refreshInput) (*refreshOutput, error) {
	raw, ok := authmw.BearerToken(input.Authorization)
	if !ok {
		return nil, huma.Error401Unauthorized("missing bearer token")
	}

	issued, err := h.session.Refresh(ctx, raw)
	if err != nil {
		if errors.Is(err, errs.ErrTokenRevoked) {
			h.metrics.Auth(metrics.RefreshRevoked)
		}
		return nil, apierr.From(h.log, err)
	}

	h.metrics.Auth(metrics.RefreshOK)
	return &refreshOutput{
		Body: RefreshResponse{
			AccessToken:     issued.Token,
			TokenType:       "Bearer",
			AccessExpiresAt: issued.Claims.ExpiresAt,
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*messageOutput, error) {
	id, ok := authmw.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Logout(ctx, id); err != nil {
		return nil, apierr.From(h.log, err)
	}

	h.metrics.Auth(metrics.Logout)
	return &messageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	return &meOutput{Body: MeResponse{LoggedIn: true, UserID: userID}}, nil
}
