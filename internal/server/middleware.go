package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type contextKey string

const contextKeyClaims contextKey = "claims"

// authMiddleware memvalidasi bearer token dan menaruh klaim di konteks.
func authMiddleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeDetail(w, http.StatusUnauthorized, "token tidak ada")
				return
			}

			claims, err := issuer.ParseAndValidate(parts[1])
			if err != nil {
				writeDetail(w, http.StatusUnauthorized, "token tidak berlaku")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFrom mengambil klaim tervalidasi dari konteks.
func claimsFrom(ctx context.Context) *TokenClaims {
	claims, _ := ctx.Value(contextKeyClaims).(*TokenClaims)
	return claims
}

// requireKadep membatasi mutasi pada peran kadep.
func requireKadep(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		if claims == nil || !strings.EqualFold(claims.Role, "kadep") {
			writeDetail(w, http.StatusForbidden, "aksi ini memerlukan peran kadep")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware menulis log terstruktur per permintaan.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		event := log.Info().Str("method", r.Method).Str("path", r.URL.Path).
			Int("status", ww.Status()).Dur("duration", time.Since(start))

		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			event = event.Str("request_id", reqID)
		}

		event.Msg("http_request")
	})
}

// rateLimiter memegang limiter per IP dengan kedaluwarsa sederhana.
type rateLimiter struct {
	limit  rate.Limit
	burst  int
	mu     sync.Mutex
	store  map[string]*limiterEntry
	maxAge time.Duration
}

type limiterEntry struct {
	limiter *rate.Limiter
	updated time.Time
}

func newRateLimiter(reqPerSec float64, burst int) *rateLimiter {
	return &rateLimiter{
		limit:  rate.Limit(reqPerSec),
		burst:  burst,
		store:  make(map[string]*limiterEntry),
		maxAge: 10 * time.Minute,
	}
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, ok := rl.store[key]; ok {
		entry.updated = time.Now()
		return entry.limiter
	}

	lim := rate.NewLimiter(rl.limit, rl.burst)
	rl.store[key] = &limiterEntry{limiter: lim, updated: time.Now()}

	for k, entry := range rl.store {
		if time.Since(entry.updated) > rl.maxAge {
			delete(rl.store, k)
		}
	}

	return lim
}

// limitByIP menerapkan rate limit per alamat asal.
func (rl *rateLimiter) limitByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !rl.get(host).Allow() {
			w.Header().Set("Retry-After", "1")
			writeDetail(w, http.StatusTooManyRequests, "terlalu banyak permintaan")
			return
		}
		next.ServeHTTP(w, r)
	})
}
