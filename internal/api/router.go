// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-hq/inkwell/internal/auth"
	"github.com/inkwell-hq/inkwell/internal/middleware"
)

// NewRouter builds the HTTP routing table. Feed reads are public; every
// write requires an authenticated viewer.
func NewRouter(h *Handler, authMW *auth.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.PrometheusMetrics)
	r.Use(authMW.Authenticate)

	r.Route("/api/v1", func(r chi.Router) {
		// Credential exchange gets a tight per-IP rate limit; everything else
		// shares the global one.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(h.cfg.Security.RateLimitReqs, h.cfg.Security.RateLimitWindow))
			r.Post("/auth/signup", h.HandleSignup)
			r.Post("/auth/login", h.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(300, time.Minute))

			// Public reads
			r.Get("/health", h.HandleHealth)
			r.Get("/posts", h.HandleIndexFeed)
			r.Get("/posts/{postID}", h.HandleGetPost)
			r.Get("/posts/{postID}/comments", h.HandleListComments)
			r.Get("/groups", h.HandleListGroups)
			r.Get("/groups/{slug}/posts", h.HandleGroupFeed)
			r.Get("/profiles/{username}", h.HandleProfile)
			r.Get("/profiles/{username}/posts", h.HandleProfileFeed)

			// Authenticated viewer required
			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireAuth)
				r.Get("/auth/me", h.HandleMe)
				r.Get("/ws", h.HandleWS)
				r.Get("/feed", h.HandleFollowingFeed)
				r.Post("/posts", h.HandleCreatePost)
				r.Put("/posts/{postID}", h.HandleUpdatePost)
				r.Delete("/posts/{postID}", h.HandleDeletePost)
				r.Post("/posts/{postID}/comments", h.HandleCreateComment)
				r.Post("/groups", h.HandleCreateGroup)
				r.Post("/profiles/{username}/follow", h.HandleFollow)
				r.Delete("/profiles/{username}/follow", h.HandleUnfollow)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return r
}
