package router

import (
	"net/http"

	"talenthub-api/internal/handler"
	"talenthub-api/internal/middleware"
	"talenthub-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	AuthHandler       *handler.AuthHandler
	TalentHandler     *handler.TalentHandler
	ShowcaseHandler   *handler.ShowcaseHandler
	InvestmentHandler *handler.InvestmentHandler
	WebhookHandler    *handler.WebhookHandler
	AdminHandler      *handler.AdminHandler
	AuthMiddleware    func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Talent directory is public
		if cfg.TalentHandler != nil {
			r.Route("/talents", func(r chi.Router) {
				r.Get("/", cfg.TalentHandler.List)
				r.Get("/{talentID}", cfg.TalentHandler.Get)
				r.Get("/{talentID}/showcases", cfg.TalentHandler.ListShowcases)
				r.Get("/{talentID}/investments/summary", cfg.TalentHandler.InvestmentSummary)
			})
		}

		// Checkout resolves its bearer credential itself and keeps the
		// original {url}/{error} wire shape.
		if cfg.InvestmentHandler != nil {
			r.Post("/investments/checkout", cfg.InvestmentHandler.CreateCheckout)
		}

		// Processor webhooks authenticate by signature, not session.
		if cfg.WebhookHandler != nil {
			r.Post("/webhooks/stripe", cfg.WebhookHandler.HandleStripe)
		}

		// AUTHENTICATED routes
		r.Group(func(r chi.Router) {
			if cfg.AuthMiddleware != nil {
				r.Use(cfg.AuthMiddleware)
			}

			if cfg.AuthHandler != nil {
				r.Post("/auth/logout", cfg.AuthHandler.Logout)
				r.Get("/auth/me", cfg.AuthHandler.Me)
			}

			if cfg.InvestmentHandler != nil {
				r.Get("/investments", cfg.InvestmentHandler.ListMine)
			}

			if cfg.ShowcaseHandler != nil {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleTalent))
					r.Post("/showcases", cfg.ShowcaseHandler.Upload)
				})
				r.Get("/showcases", cfg.ShowcaseHandler.ListMine)
			}

			if cfg.AdminHandler != nil {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleAdmin))
					r.Get("/admin/stats", cfg.AdminHandler.GetStats)
					r.Post("/admin/sweep", cfg.AdminHandler.RunSweep)
				})
			}
		})
	})

	return r
}
