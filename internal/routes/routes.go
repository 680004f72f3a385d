package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/ytsummary-backend/internal/handlers"
	"github.com/AnshRaj112/ytsummary-backend/internal/metrics"
)

func SetupRoutes(r chi.Router, h *handlers.Handler) {
	// Health and metrics (not session-bound)
	r.Get("/health", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/api/session", h.GetSession)

	// Unauthenticated screen
	r.Post("/api/auth/mode", h.SelectMode)
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/admin/signin", h.AdminSignin)
	r.Post("/api/auth/logout", h.Logout)

	// User screen
	r.Post("/api/video", h.SubmitVideo)
	r.Post("/api/content/generate", h.Generate)
	r.Post("/api/content/translate", h.Translate)
	r.Get("/api/content/export", h.Export)
	r.Post("/api/content/archive", h.Archive)
	r.Post("/api/content/save", h.Save)

	// Admin screen
	r.Get("/api/admin/users", h.ListUsers)
	r.Get("/api/admin/content", h.ListContent)
}
