package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/panoport/panoport-backend/api/controllers"
	cartcontrollers "github.com/panoport/panoport-backend/api/controllers/cart"
	panelcontrollers "github.com/panoport/panoport-backend/api/controllers/panels"
	rulecontrollers "github.com/panoport/panoport-backend/api/controllers/rules"
	"github.com/panoport/panoport-backend/api/middleware"
	"github.com/panoport/panoport-backend/internal/cart"
	"github.com/panoport/panoport-backend/internal/panels"
	"github.com/panoport/panoport-backend/internal/rules"
	"github.com/panoport/panoport-backend/pkg/config"
	"github.com/panoport/panoport-backend/pkg/logger"
	pkgredis "github.com/panoport/panoport-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *pkgredis.Client
	Registry *prometheus.Registry

	CartService  cart.Service
	PanelService panels.Service
	RuleService  rules.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		pingers := map[string]controllers.Pinger{"postgres": deps.DB}
		if deps.Redis != nil {
			pingers["redis"] = deps.Redis
		}
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		var store pkgredis.IdempotencyStore
		if deps.Redis != nil {
			store = deps.Redis
			policy := middleware.NewRateLimitPolicy("api", cfg.RateLimit.Window, cfg.RateLimit.IPLimit, cfg.RateLimit.SessionLimit)
			r.Use(middleware.RateLimit(policy, deps.Redis, logg))
		}

		r.Route("/panels", func(r chi.Router) {
			r.Get("/", panelcontrollers.PanelList(deps.PanelService, logg))
			r.Get("/{id}", panelcontrollers.PanelGet(deps.PanelService, logg))
			r.Get("/{id}/availability", panelcontrollers.PanelAvailability(deps.PanelService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Idempotency(store, logg, cfg.Idempotency.TTL))
				r.Get("/{id}/blocked-ranges", panelcontrollers.BlockedRangeList(deps.PanelService, logg))
				r.Post("/{id}/blocked-ranges", panelcontrollers.BlockedRangeAdd(deps.PanelService, logg))
				r.Delete("/{id}/blocked-ranges/{rangeID}", panelcontrollers.BlockedRangeRemove(deps.PanelService, logg))
			})
		})

		r.Route("/rules", func(r chi.Router) {
			r.Use(middleware.Idempotency(store, logg, cfg.Idempotency.TTL))
			r.Get("/", rulecontrollers.RuleList(deps.RuleService, logg))
			r.Post("/", rulecontrollers.RuleCreate(deps.RuleService, logg))
			r.Get("/{id}", rulecontrollers.RuleGet(deps.RuleService, logg))
			r.Put("/{id}", rulecontrollers.RuleUpdate(deps.RuleService, logg))
			r.Delete("/{id}", rulecontrollers.RuleDelete(deps.RuleService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireSession(logg))
			r.Get("/ping", controllers.SessionPing())
			r.With(middleware.Idempotency(store, logg, cfg.Idempotency.TTL)).Post("/quote", cartcontrollers.CartQuote(deps.CartService, logg))
			r.Post("/items/validate", cartcontrollers.CartValidate(deps.CartService, logg))
			r.Get("/", cartcontrollers.CartFetch(deps.CartService, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.CartService, logg))
		})
	})

	return r
}
