/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. CORS:          Cross-origin requests for the mobile/web frontend
  2. RequestID:     Unique ID per request for tracing
  3. RequestLogger: Structured slog request logging (httplog)
  4. Recoverer:     Panic recovery (500 instead of crash)
  5. Heartbeat:     Liveness probe at /healthz

SECURITY NOTE:
  No authentication middleware. All endpoints are public; put this behind
  a gateway before exposing it.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(true)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(slog.String("app", "remit-planner"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Get("/{id}", h.GetClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Post("/", h.CreateWorker)
			r.Get("/{id}", h.GetWorker)
			r.Delete("/{id}", h.DeleteWorker)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)
			r.Get("/{id}", h.GetSchedule)
			r.Delete("/{id}", h.DeleteSchedule)
			r.Get("/{id}/workers", h.ListScheduleWorkers)
			r.Post("/{id}/workers", h.AttachWorker)
			r.Get("/{id}/payroll", h.SchedulePayroll)
		})

		r.Route("/schedule-workers", func(r chi.Router) {
			r.Get("/{id}", h.GetScheduleWorker)
			r.Delete("/{id}", h.DetachWorker)
			r.Put("/{id}/terms", h.UpdateTerms)
			r.Post("/{id}/paid", h.MarkPaid)
			r.Get("/{id}/periods", h.ListPeriods)
			r.Post("/{id}/periods", h.AddPeriod)
			r.Get("/{id}/payroll", h.WorkerPayroll)
		})

		r.Route("/periods", func(r chi.Router) {
			r.Put("/{id}", h.UpdatePeriod)
			r.Delete("/{id}", h.RemovePeriod)
		})

		r.Post("/estimate", h.Estimate)
	})

	return r
}
