// Package http provides the HTTP interface of the comparison engine: a gin
// route tree over the compare service, plus the middleware stack (request
// IDs, access logging, metrics, recovery).
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.
type RouterConfig struct {
	Handler *CompareHandler
	Logger  logging.Logger

	// Metrics enables per-request instrumentation when non-nil.
	Metrics *prom.AppMetrics

	// Collector serves the /metrics scrape endpoint when non-nil.
	Collector prom.MetricsCollector

	// MetricsPath is the scrape endpoint path; defaults to "/metrics".
	MetricsPath string

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string
}

// NewRouter constructs the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()

	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	r.Use(RequestID())
	r.Use(Recovery(log))
	r.Use(AccessLog(log.Named("http")))
	if cfg.Metrics != nil {
		r.Use(Metrics(cfg.Metrics))
	}

	r.GET("/healthz", cfg.Handler.Healthz)

	if cfg.Collector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Collector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		cmp := api.Group("/compare")
		{
			cmp.POST("/exact", cfg.Handler.Exact)
			cmp.POST("/substructure", cfg.Handler.Substructure)
			cmp.POST("/mcs", cfg.Handler.MCS)
			cmp.POST("/score", cfg.Handler.Score)
			cmp.POST("/batch", cfg.Handler.Batch)
		}

		mol := api.Group("/molecules")
		{
			mol.GET("/inspect", cfg.Handler.Inspect)
			mol.POST("/render", cfg.Handler.Render)
		}
	}

	return r
}
