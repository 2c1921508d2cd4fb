package obs

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce      sync.Once
	opCounter        metric.Int64Counter
	latencyHistogram metric.Float64Histogram
)

func installMetrics(m metric.Meter) {
	metricsOnce.Do(func() {
		if m == nil {
			return
		}
		opCounter, _ = m.Int64Counter("ayet.sdk.operations", metric.WithDescription("SDK operations started"))
		latencyHistogram, _ = m.Float64Histogram("ayet.sdk.latency_ms", metric.WithDescription("SDK operation latency (ms)"))
	})
}

func recordOp(attrs ...attribute.KeyValue) {
	if opCounter == nil {
		return
	}
	opCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

func recordLatency(ms float64, attrs ...attribute.KeyValue) {
	if latencyHistogram == nil {
		return
	}
	latencyHistogram.Record(context.Background(), ms, metric.WithAttributes(attrs...))
}
