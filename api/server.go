/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/login, /api/logout   Public auth endpoints
  /api/admin/*              Back office (admin session required)
  /api/me/*                 Employee portal (employee session required)
  /api/photos/{id}          Photo payloads (any session)

SEE ALSO:
  - handlers.go, me.go, export.go: handler implementations
  - session.go: requireRole middleware
  - cmd/server/main.go: server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Auth (public)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		// Back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireRole(RoleAdmin))

			r.Put("/password", h.ChangePassword)
			r.Get("/dashboard", h.AdminDashboard)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Post("/", h.CreateEmployee)
				r.Get("/{id}", h.GetEmployee)
				r.Put("/{id}", h.UpdateEmployee)
				r.Delete("/{id}", h.DeleteEmployee)
			})

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", h.ListWorkEntries)
				r.Post("/", h.CreateWorkEntry)
				r.Put("/{id}", h.UpdateWorkEntry)
				r.Delete("/{id}", h.DeleteWorkEntry)
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", h.ListAdvances)
				r.Post("/", h.CreateAdvance)
				r.Delete("/{id}", h.DeleteAdvance)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.ListFoodExpenses)
				r.Post("/", h.CreateFoodExpense)
				r.Delete("/{id}", h.DeleteFoodExpense)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.ListPaymentOutlook)
				r.Post("/", h.CreatePayment)
				r.Get("/{employee}", h.GetPaymentHistory)
				r.Put("/{id}", h.UpdatePayment)
				r.Delete("/{id}", h.DeletePayment)
			})

			r.Get("/export", h.ExportPayroll)
			r.Get("/photos", h.ListPhotos)
		})

		// Employee portal
		r.Route("/me", func(r chi.Router) {
			r.Use(h.requireRole(RoleEmployee))

			r.Get("/dashboard", h.MeDashboard)
			r.Post("/checkin", h.CheckIn)
			r.Post("/checkout", h.CheckOut)
			r.Get("/payments", h.MePayments)
		})

		// Photo payloads, visible to both roles
		r.Group(func(r chi.Router) {
			r.Use(h.requireSession())
			r.Get("/photos/{id}", h.GetPhoto)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"service":"payroll-engine","status":"ok"}`))
	})

	return r
}
