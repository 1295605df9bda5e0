// Package metrics holds Prometheus instruments used across the engine.
// All collectors are registered with the global registry, so importing
// this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PageRenderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_render_total",
			Help: "Pages rendered, labelled by page type.",
		}, []string{"page"})

	PageRenderErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "page_render_errors_total",
			Help: "Template engine failures surfaced as 500s.",
		})

	TenantLookupMissTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_lookup_miss_total",
			Help: "Requests for slugs with no matching tenant.",
		})

	ContentDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_degraded_total",
			Help: "Content loads that fell back to defaults after a storage error.",
		})

	PaletteDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "palette_degraded_total",
			Help: "Palette resolutions that fell back to baseline tokens.",
		})

	ThemeEngineBuildTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "theme_engine_build_total",
			Help: "Theme-scoped template engines parsed and cached.",
		})
)

func init() {
	prometheus.MustRegister(
		PageRenderTotal,
		PageRenderErrorsTotal,
		TenantLookupMissTotal,
		ContentDegradedTotal,
		PaletteDegradedTotal,
		ThemeEngineBuildTotal,
	)
}
