// Package metrics exposes OpenTelemetry instruments through a Prometheus
// scrape handler.
package metrics

import (
	"context"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests        metric.Int64Counter
	HTTPDuration        metric.Float64Histogram
	IntegrityViolations metric.Int64Counter
	EventsPublished     metric.Int64Counter
	EventFailures       metric.Int64Counter
	CacheLookups        metric.Int64Counter
}

// Setup builds the instruments over a private registry so that several
// instances can coexist in one process.
func Setup(serviceName string) (*Metrics, http.Handler, error) {
	reg := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(serviceName)

	m := &Metrics{}

	m.HTTPRequests, err = meter.Int64Counter(
		"rentdir_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.HTTPDuration, err = meter.Float64Histogram(
		"rentdir_http_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.IntegrityViolations, err = meter.Int64Counter(
		"rentdir_integrity_violations_total",
		metric.WithDescription("References to records that no longer exist, found while joining"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.EventsPublished, err = meter.Int64Counter(
		"rentdir_events_published_total",
		metric.WithDescription("Domain events handed to the broker"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.EventFailures, err = meter.Int64Counter(
		"rentdir_event_failures_total",
		metric.WithDescription("Domain events that could not be published"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.CacheLookups, err = meter.Int64Counter(
		"rentdir_cache_lookups_total",
		metric.WithDescription("Listing cache lookups by result"),
	)
	if err != nil {
		return nil, nil, err
	}

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m, handler, nil
}

func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)

	m.HTTPRequests.Add(ctx, 1, labels)
	m.HTTPDuration.Record(ctx, duration.Seconds(), labels)
}

func (m *Metrics) RecordIntegrityViolation(ctx context.Context, relation string) {
	if m == nil {
		return
	}
	m.IntegrityViolations.Add(ctx, 1, metric.WithAttributes(attribute.String("relation", relation)))
}

func (m *Metrics) RecordEvent(ctx context.Context, routingKey string, err error) {
	if m == nil {
		return
	}
	labels := metric.WithAttributes(attribute.String("routing_key", routingKey))
	if err != nil {
		m.EventFailures.Add(ctx, 1, labels)
		return
	}
	m.EventsPublished.Add(ctx, 1, labels)
}

func (m *Metrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
