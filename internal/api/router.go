package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/learnhub-backend/internal/api/handlers"
	"github.com/baharkarakas/learnhub-backend/internal/config"
	"github.com/baharkarakas/learnhub-backend/internal/metrics"
	"github.com/baharkarakas/learnhub-backend/internal/middleware"
	"github.com/baharkarakas/learnhub-backend/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Accounts *services.AccountService
	Profiles *services.ProfileService
	Gate     *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(d.Log), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	ah := handlers.NewAuthHandler(d.Accounts, d.Log, d.Cfg.ExposeErrors())
	ph := handlers.NewProfileHandler(d.Profiles, d.Log, d.Cfg.ExposeErrors())

	mount := func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/signup", ah.Signup)
		r.Post("/auth/login", ah.Login)

		r.Group(func(r chi.Router) {
			r.Use(d.Gate.Auth)
			r.Get("/auth/me", ah.Me)

			// ---------- profile ----------
			r.Get("/profile", ph.Get)
			r.Post("/profile", ph.Create)
		})
	}

	mount(r)
	// browser client prefix; the survey is also served as /api/edu-details
	r.Route("/api", func(r chi.Router) {
		mount(r)
		r.With(d.Gate.Auth).Get("/edu-details", ph.Get)
		r.With(d.Gate.Auth).Post("/edu-details", ph.Create)
	})

	return r
}
