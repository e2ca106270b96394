// Package metrics exposes Prometheus instrumentation for the menu service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Config configures the metrics set.
type Config struct {
	// Namespace is the metrics namespace (default: "panda_menu").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics set.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registryFetches   *prometheus.CounterVec
	registryDuration  prometheus.Histogram
	registryNetworks  prometheus.Gauge
	locationResolves  *prometheus.CounterVec
	menuRetries       prometheus.Counter
	fetchesSuppressed prometheus.Counter
}

// New registers the collectors and returns the metrics set.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "panda_menu",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		registryFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "registry_fetches_total",
			Help:      "Total number of registry fetches by result",
		}, []string{"result"}),

		registryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "registry_fetch_duration_seconds",
			Help:      "Registry fetch duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		registryNetworks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "registry_networks",
			Help:      "Number of networks in the loaded registry",
		}),

		locationResolves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "location_resolves_total",
			Help:      "Total number of page location resolutions by outcome",
		}, []string{"matched"}),

		menuRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "menu_retries_total",
			Help:      "Total number of retry requests",
		}),

		fetchesSuppressed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "registry_fetches_suppressed_total",
			Help:      "Open requests that did not start a fetch because one was in flight",
		}),
	}
}

// ObserveFetch records the outcome of one registry fetch.
func (m *Metrics) ObserveFetch(result string, took time.Duration, networks int) {
	if m == nil {
		return
	}
	m.registryFetches.WithLabelValues(result).Inc()
	m.registryDuration.Observe(took.Seconds())
	if result == ResultSuccess {
		m.registryNetworks.Set(float64(networks))
	}
}

// ObserveResolve records whether a page matched a network.
func (m *Metrics) ObserveResolve(matched bool) {
	if m == nil {
		return
	}
	label := "false"
	if matched {
		label = "true"
	}
	m.locationResolves.WithLabelValues(label).Inc()
}

// IncRetry counts a retry request.
func (m *Metrics) IncRetry() {
	if m == nil {
		return
	}
	m.menuRetries.Inc()
}

// IncSuppressed counts an open that joined an in-flight fetch.
func (m *Metrics) IncSuppressed() {
	if m == nil {
		return
	}
	m.fetchesSuppressed.Inc()
}
