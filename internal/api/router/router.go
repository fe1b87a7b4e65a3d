package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kosbot/kosbot-api/internal/api/handlers"
	"github.com/kosbot/kosbot-api/internal/api/middleware"
	"github.com/kosbot/kosbot-api/internal/config"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/metrics"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Billing   *handlers.BillingHandler
	Webhook   *handlers.WebhookHandler
	Property  *handlers.PropertyHandler
	Room      *handlers.RoomHandler
	Tenant    *handlers.TenantHandler
	Invoice   *handlers.InvoiceHandler
	Payment   *handlers.PaymentHandler
	Ticket    *handlers.TicketHandler
	Dashboard *handlers.DashboardHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.Server.FrontendURL))
	r.Use(middleware.Locale)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorMessage(w, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorMessage(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// Probes and provider callbacks sit outside the API rate limit
	r.Get("/health", h.Health.Healthz)
	r.Get("/ready", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())
	r.Post("/webhooks/stripe", h.Webhook.Stripe)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/login", h.Auth.Login)
			r.Post("/auth/refresh", h.Auth.Refresh)
			r.Post("/auth/logout", h.Auth.Logout)
		})

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
			r.Use(middleware.OwnerRateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/billing", func(r chi.Router) {
				r.Get("/plans", h.Billing.ListPlans)
				r.Post("/checkout", h.Billing.Checkout)
				r.Post("/portal", h.Billing.Portal)
				r.Get("/limits", h.Billing.Limits)
			})

			r.Route("/properties", func(r chi.Router) {
				r.Get("/", h.Property.List)
				r.Post("/", h.Property.Create)
				r.Get("/{id}", h.Property.Get)
				r.Put("/{id}", h.Property.Update)
				r.Delete("/{id}", h.Property.Delete)
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", h.Room.List)
				r.Post("/", h.Room.Create)
				r.Get("/{id}", h.Room.Get)
				r.Put("/{id}", h.Room.Update)
				r.Delete("/{id}", h.Room.Delete)
			})

			r.Route("/tenants", func(r chi.Router) {
				r.Get("/", h.Tenant.List)
				r.Post("/", h.Tenant.Create)
				r.Get("/leases", h.Tenant.Leases)
				r.Get("/{id}", h.Tenant.Get)
				r.Put("/{id}", h.Tenant.Update)
				r.Delete("/{id}", h.Tenant.Delete)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.Invoice.List)
				r.Post("/", h.Invoice.Create)
				r.Get("/{id}", h.Invoice.Get)
				r.Put("/{id}", h.Invoice.Update)
				r.Delete("/{id}", h.Invoice.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.Payment.List)
				r.Post("/", h.Payment.Create)
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", h.Ticket.List)
				r.Post("/", h.Ticket.Create)
				r.Get("/{id}", h.Ticket.Get)
				r.Put("/{id}", h.Ticket.Update)
				r.Delete("/{id}", h.Ticket.Delete)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/overview", h.Dashboard.Overview)
				r.Get("/quick", h.Dashboard.QuickStats)
				r.Get("/tasks", h.Dashboard.Tasks)
				r.Get("/revenue", h.Dashboard.Revenue)
			})
		})
	})

	return r
}
