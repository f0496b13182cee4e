// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/http/handlers"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/http/middleware"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/infra"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/dispatch"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/driver"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
)

// NewRouter builds the gin engine. verifier may be nil, in which case the API
// runs unauthenticated (local development).
func NewRouter(
	metricsService *metrics.Service,
	driverService *driver.Service,
	dispatchService *dispatch.Service,
	verifier infra.TokenVerifier,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Telemetry())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if verifier != nil {
		api.Use(middleware.Auth(verifier))
	}

	metricsHandler := handlers.NewMetricsHandler(metricsService)
	api.POST("/drivers/:id/trips/requested", metricsHandler.TripRequested)
	api.POST("/drivers/:id/trips/accepted", metricsHandler.TripAccepted)
	api.POST("/drivers/:id/trips/rejected", metricsHandler.TripRejected)
	api.POST("/drivers/:id/trips/cancelled", metricsHandler.TripCancelled)
	api.POST("/drivers/:id/trips/completed", metricsHandler.TripCompleted)
	api.GET("/drivers/:id/metrics", metricsHandler.GetSnapshot)
	api.POST("/drivers/:id/metrics/init", metricsHandler.Initialize)

	driverHandler := handlers.NewDriverHandler(driverService)
	api.POST("/drivers", driverHandler.Create)
	api.GET("/drivers/:id", driverHandler.Get)
	api.POST("/drivers/:id/rating", driverHandler.Rate)

	dispatchHandler := handlers.NewDispatchHandler(dispatchService)
	api.GET("/dispatch/rank", dispatchHandler.Rank)

	return r
}
