// POST /auth/signup, /auth/signin, /auth/refresh   (публичные)
// POST /auth/logout, GET /auth/me                  (auth)
// POST /vault/set_password, /vault/unlock-vault    (auth)
// POST /vault/add, /vault/view, /vault/update/{id} (auth)
// GET  /vault/get-vault, DELETE /vault/delete/{id} (auth)
// GET  /api/v1/health, /auth/keep-alive, /metrics

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	authAPI "primer/internal/app/server/api/http/auth"
	healthAPI "primer/internal/app/server/api/http/health"
	"primer/internal/app/server/api/http/middleware"
	"primer/internal/app/server/api/http/middleware/auth"
	"primer/internal/app/server/api/http/middleware/logger"
	"primer/internal/app/server/api/http/middleware/ratelimit"
	vaultAPI "primer/internal/app/server/api/http/vault"
	"primer/internal/app/server/config"
	"primer/internal/app/server/metrics"
	"primer/internal/domain/session"
	"primer/internal/domain/user"
	"primer/internal/domain/vault"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Users     user.Servicer
	Session   session.Servicer
	Vault     vault.Servicer
	DB        healthAPI.Pinger
	Metrics   *metrics.Metrics
	RateLimit config.RateLimit
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(d Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	cfg := huma.DefaultConfig("Primer API", "1.0.0")
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, cfg)

	set := middlewares(API, d, log)
	healthAPI.NewHandler(d.DB, log, set.Public).SetupRoutes(API)
	authAPI.NewHandler(d.Users, d.Session, d.Metrics, log, set).SetupRoutes(API)
	vaultAPI.NewHandler(d.Vault, d.Metrics, log, set).SetupRoutes(API)

	if d.Metrics != nil {
		mux.Handle("/metrics", d.Metrics.Handler())
	}
	return mux
}

func middlewares(api huma.API, d Deps, log *slog.Logger) middleware.Set {
	loggerMW := logger.New(log, d.Metrics).Middleware()
	globalMW := ratelimit.New(api, d.RateLimit.PerMinute, log).Middleware()
	strictMW := ratelimit.New(api, d.RateLimit.AuthPerMinute, log, ratelimit.PerRoute()).Middleware()
	authMW := auth.New(api, d.Session, log).Middleware()

	c := middleware.NewContainer()
	var set middleware.Set

	set.Public = c.Add(loggerMW, globalMW).GetAllAndClear()
	set.Strict = c.Add(loggerMW, globalMW, strictMW).GetAllAndClear()
	set.Protected = c.Add(loggerMW, globalMW, authMW).GetAllAndClear()
	set.StrictProtected = c.Add(loggerMW, globalMW, strictMW, authMW).GetAllAndClear()
	return set
}
