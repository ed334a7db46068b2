// Package ratelimit throttles requests per client IP with token buckets.
package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter allows perMinute requests per IP with a burst of the same size.
type Limiter struct {
	api       huma.API
	log       *slog.Logger
	limit     rate.Limit
	burst     int
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
	perRoute  bool
}

type Option func(*Limiter)

// PerRoute gives every operation its own bucket per IP instead of one
// bucket shared by all operations the middleware is attached to.
func PerRoute() Option {
	return func(l *Limiter) { l.perRoute = true }
}

func New(api huma.API, perMinute int, log *slog.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		api:      api,
		log:      log.With("component", "rate_limiter"),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > idleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *Limiter) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ip := clientIP(ctx.RemoteAddr())
		if !l.Allow(l.key(ip, ctx)) {
			l.log.Warn("rate limit exceeded", "remote_ip", ip, "path", ctx.URL().Path)
			ctx.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(1/float64(l.limit)))))
			_ = huma.WriteErr(l.api, ctx, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(ctx)
	}
}

func (l *Limiter) key(ip string, ctx huma.Context) string {
	if !l.perRoute {
		return ip
	}
	if op := ctx.Operation(); op != nil {
		return ip + " " + op.Method + " " + op.Path
	}
	return ip + " " + ctx.URL().Path
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
