// Package router sets up all HTTP routes and middleware chains for the
// PressKit API. Routes are organized into public projections, open auth
// endpoints, and an authenticated content area with admin-only writes.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"presskit/internal/auth"
	"presskit/internal/handlers"
	"presskit/internal/middleware"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth     *handlers.Auth
	Sections *handlers.Sections
	Pages    *handlers.Pages
	Posts    *handlers.Posts
	Blocks   *handlers.Blocks
	Media    *handlers.Media
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(issuer *auth.Issuer, corsOrigins string, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(corsMiddleware(corsOrigins))
	r.Use(middleware.Authenticate(issuer))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Public and auth endpoints get a tighter rate limit than the
	// authenticated admin surface.
	publicLimiter := middleware.NewRateLimiter(120, time.Minute)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth — open, rate limited.
		r.Route("/auth", func(r chi.Router) {
			r.Use(publicLimiter.Middleware)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/verify", h.Auth.Verify)
			r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/content", func(r chi.Router) {
			// Public projections — unauthenticated, rate limited.
			r.Group(func(r chi.Router) {
				r.Use(publicLimiter.Middleware)
				r.Get("/sections/public", h.Sections.Public)
				r.Get("/pages/list_public", h.Pages.ListPublic)
				r.Get("/pages/public/{slug}", h.Pages.PublicBySlug)
				r.Get("/blog/list_public", h.Posts.ListPublic)
				r.Get("/blog/categories", h.Posts.Categories)
				r.Get("/blog/tags", h.Posts.Tags)
				r.Get("/blog/public/{slug}", h.Posts.PublicBySlug)
				r.Get("/blocks/public", h.Blocks.Public)
				r.Get("/blocks/public/{identifier}", h.Blocks.PublicByIdentifier)
			})

			// Authenticated reads; writes restricted to admins.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)

				r.Route("/sections", func(r chi.Router) {
					r.Get("/", h.Sections.List)
					r.Get("/{id}", h.Sections.Get)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Sections.Create)
						r.Put("/{id}", h.Sections.Update)
						r.Delete("/{id}", h.Sections.Delete)
					})
				})

				r.Route("/pages", func(r chi.Router) {
					r.Get("/", h.Pages.List)
					r.Get("/{id}", h.Pages.Get)
					r.Get("/{id}/blocks", h.Pages.ListBlocks)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Pages.Create)
						r.Put("/{id}", h.Pages.Update)
						r.Delete("/{id}", h.Pages.Delete)
						r.Post("/{id}/duplicate", h.Pages.Duplicate)
						r.Post("/{id}/blocks", h.Pages.AttachBlock)
						r.Delete("/{id}/blocks/{blockID}", h.Pages.DetachBlock)
					})
				})

				r.Route("/blog", func(r chi.Router) {
					r.Get("/", h.Posts.List)
					r.Get("/{id}", h.Posts.Get)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Posts.Create)
						r.Put("/{id}", h.Posts.Update)
						r.Delete("/{id}", h.Posts.Delete)
						r.Post("/{id}/duplicate", h.Posts.Duplicate)
					})
				})

				r.Route("/blocks", func(r chi.Router) {
					r.Get("/", h.Blocks.List)
					r.Get("/{id}", h.Blocks.Get)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Blocks.Create)
						r.Put("/{id}", h.Blocks.Update)
						r.Delete("/{id}", h.Blocks.Delete)
					})
				})
			})
		})

		// Media — authenticated reads, admin-only writes.
		r.Route("/media", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.Media.List)
			r.Get("/{id}", h.Media.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Media.Upload)
				r.Delete("/{id}", h.Media.Delete)
			})
		})
	})

	return r
}

// corsMiddleware builds the CORS handler from the configured origin list.
func corsMiddleware(origins string) func(http.Handler) http.Handler {
	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
