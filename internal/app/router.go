package app

import (
	"net/http"
	"time"

	"dateTracker/internal/handlers"
	"dateTracker/internal/metrics"
	"dateTracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterDeps struct {
	Tasks          *handlers.TaskHandler
	Dates          *handlers.DateHandler
	System         *handlers.SystemHandler
	Metrics        *metrics.Metrics
	Development    bool
	RequestTimeout time.Duration
	RateLimitRPM   int
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.Recover(deps.Development))
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RateLimit(deps.RateLimitRPM))
	r.Use(chimw.Timeout(deps.RequestTimeout))

	// set before Route so subrouters inherit them
	r.NotFound(deps.System.NotFound)
	r.MethodNotAllowed(deps.System.NotFound)

	r.Get("/health", deps.System.Health)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", deps.System.Index)
		r.Get("/calculate-date", deps.Dates.CalculateDate)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", deps.Tasks.ListTasks)
			r.Post("/", deps.Tasks.CreateTask)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.Tasks.GetTask)
				r.Put("/", deps.Tasks.UpdateTask)
				r.Delete("/", deps.Tasks.DeleteTask)
			})
		})
	})

	return r
}
