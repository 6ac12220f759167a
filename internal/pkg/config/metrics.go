package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics tracks configuration state for one component.
//
// Metrics generated (prefixed by component name):
//   - {component}_config_load_timestamp: Unix timestamp of last configuration load
//   - {component}_config_fallbacks_total: fallbacks applied, by field
//   - {component}_config_fallback_active: 1 if any setting runs on its default after a bad value
type ConfigMetrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewConfigMetrics registers the metrics with the default registry.
// It panics if called twice with the same component name.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return newConfigMetrics(promauto.With(prometheus.DefaultRegisterer), componentName)
}

func newConfigMetrics(factory promauto.Factory, componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", componentName),
		}),
		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration fallback operations", componentName),
		}, []string{"field"}),
		FallbackActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", componentName),
		}),
	}
}

// RecordFallback counts a fallback applied to field and marks the component
// as running on a fallback.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
	m.FallbackActive.Set(1)
}

// RecordLoadTimestamp records the current time as the configuration load timestamp.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}
