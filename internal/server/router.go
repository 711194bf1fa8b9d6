// Package server adalah backend stub in-memory untuk pengembangan lokal
// dan uji integrasi. Kontrak REST-nya sama dengan backend sesungguhnya.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/departemen-if/kurikulum/internal/config"
)

// Handler memegang dependensi seluruh endpoint stub.
type Handler struct {
	store  *Store
	issuer *TokenIssuer
}

// NewHandler membuat handler di atas store dan penerbit token.
func NewHandler(store *Store, issuer *TokenIssuer) *Handler {
	return &Handler{store: store, issuer: issuer}
}

// NewRouter merangkai router stub lengkap dengan middleware-nya.
func NewRouter(cfg *config.Server, store *Store) http.Handler {
	issuer := NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	h := NewHandler(store, issuer)
	limiter := newRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(limiter.limitByIP)

	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(issuer))

		r.Get("/auth/me", h.handleMe)
		r.Post("/auth/logout", h.handleLogout)

		r.Route("/kurikulum", func(r chi.Router) {
			r.Get("/", h.handleListKurikulum)
			r.Get("/{id}", h.handleGetKurikulum)
			r.With(requireKadep).Post("/", h.handleCreateKurikulum)
			r.With(requireKadep).Patch("/{id}", h.handleUpdateKurikulum)
		})

		r.Route("/cpl", func(r chi.Router) {
			r.Get("/kurikulum-aktif", h.handleListCPLAktif)
			r.With(requireKadep).Post("/{idKurikulum}", h.handleCreateCPL)
			r.Route("/{idKurikulum}/{idCPL}", func(r chi.Router) {
				r.Get("/", h.handleGetCPL)
				r.With(requireKadep).Patch("/", h.handleUpdateCPL)
				r.With(requireKadep).Delete("/", h.handleDeleteCPL)

				r.Route("/indikator", func(r chi.Router) {
					r.With(requireKadep).Post("/", h.handleCreateIndikator)
					r.Get("/{idIndikator}", h.handleGetIndikator)
					r.With(requireKadep).Patch("/{idIndikator}", h.handleUpdateIndikator)
					r.With(requireKadep).Delete("/{idIndikator}", h.handleDeleteIndikator)
				})
			})
		})

		r.Route("/matkul", func(r chi.Router) {
			r.Get("/", h.handleListMatkul)
			r.Get("/{id}", h.handleGetMatkul)
			r.With(requireKadep).Post("/", h.handleCreateMatkul)
			r.With(requireKadep).Patch("/{id}", h.handleUpdateMatkul)
			r.With(requireKadep).Delete("/{id}", h.handleDeleteMatkul)
		})
	})

	return r
}
