package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/doc-studio/engine/internal/api/handlers"
	mw "github.com/doc-studio/engine/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret      []byte
	AuthHandler     *handlers.AuthHandler
	ProjectsHandler *handlers.ProjectsHandler
	SectionsHandler *handlers.SectionsHandler
	AIHandler       *handlers.AIHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Auth routes (public)
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", dep.AuthHandler.Register)
		ar.Post("/login", dep.AuthHandler.Login)
	})

	// Protected routes
	r.Group(func(protected chi.Router) {
		protected.Use(mw.Auth(dep.HMACSecret))

		protected.Get("/auth/me", dep.AuthHandler.Me)

		protected.Route("/projects", func(pr chi.Router) {
			pr.Get("/", dep.ProjectsHandler.List)
			pr.Post("/", dep.ProjectsHandler.Create)
			pr.Get("/{id}", dep.ProjectsHandler.Get)
			pr.Delete("/{id}", dep.ProjectsHandler.Delete)
			pr.Post("/{id}/generate", dep.ProjectsHandler.Generate)
			pr.Get("/{id}/export", dep.ProjectsHandler.Export)
		})

		protected.Route("/sections", func(sr chi.Router) {
			sr.Post("/{id}/refine", dep.SectionsHandler.Refine)
			sr.Post("/{id}/feedback", dep.SectionsHandler.Feedback)
		})

		protected.Get("/ai/suggest-outline", dep.AIHandler.SuggestOutline)
	})

	return r
}
