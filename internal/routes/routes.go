package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/digitalburnout/burnout-backend/internal/handlers"
	"github.com/digitalburnout/burnout-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux) {
	// Public auth routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimit)
		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)
	})

	// Token-gated metrics reads
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/dashboard-data", handlers.DashboardData)
		r.Get("/api/stats/{type}/{days}", handlers.StatsSeries)
		r.Get("/api/activity", handlers.ActivityLogs)
		r.Get("/api/recommendations", handlers.Recommendations)
	})

	// WebSocket live dashboard feed (authenticates inside the handler so the
	// token can also arrive via query parameter)
	r.Get("/ws/dashboard", handlers.DashboardFeed)
}
