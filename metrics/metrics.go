package metrics

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoardcache/hoard/config"
)

//nolint:gochecknoglobals
var Reg = prometheus.NewRegistry()

// RegisterMetric registers prometheus collector
func RegisterMetric(c prometheus.Collector) {
	_ = Reg.Register(c)
}

// Start registers the metric handler on the router and enables collection of process metrics
func Start(router *chi.Mux, cfg config.MetricsConfig) {
	if cfg.Enable {
		_ = Reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		_ = Reg.Register(collectors.NewGoCollector())

		router.Handle(cfg.Path,
			promhttp.InstrumentMetricHandler(Reg, promhttp.HandlerFor(Reg, promhttp.HandlerOpts{})))
	}
}
