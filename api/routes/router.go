package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/dropsight-backend/api/controllers"
	dropcontrollers "github.com/angelmondragon/dropsight-backend/api/controllers/drops"
	"github.com/angelmondragon/dropsight-backend/api/middleware"
	"github.com/angelmondragon/dropsight-backend/internal/analytics"
	"github.com/angelmondragon/dropsight-backend/internal/drops"
	"github.com/angelmondragon/dropsight-backend/internal/inventory"
	"github.com/angelmondragon/dropsight-backend/pkg/config"
	"github.com/angelmondragon/dropsight-backend/pkg/db"
	"github.com/angelmondragon/dropsight-backend/pkg/logger"
	"github.com/angelmondragon/dropsight-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	dropService drops.Service,
	inventoryService inventory.Service,
	analyticsService analytics.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())

		r.Route("/v1/drops", func(r chi.Router) {
			r.Use(middleware.Idempotency(redisClient, logg))

			r.Post("/", dropcontrollers.Create(dropService, logg))
			r.Get("/", dropcontrollers.List(dropService, logg))

			r.Route("/{dropId}", func(r chi.Router) {
				r.Get("/", dropcontrollers.Get(dropService, logg))
				r.Patch("/", dropcontrollers.Update(dropService, logg))
				r.Delete("/", dropcontrollers.Delete(dropService, logg))

				r.Get("/analytics", dropcontrollers.Analytics(analyticsService, logg))
				r.Get("/score", dropcontrollers.Score(analyticsService, logg))
				r.Get("/rankings", dropcontrollers.Rankings(analyticsService, logg))

				r.Route("/inventory", func(r chi.Router) {
					r.Get("/", dropcontrollers.ListInventory(inventoryService, logg))
					r.Put("/", dropcontrollers.SetInventory(inventoryService, logg))
					r.Post("/import", dropcontrollers.ImportInventoryCSV(inventoryService, logg))
				})
			})
		})
	})

	return r
}
