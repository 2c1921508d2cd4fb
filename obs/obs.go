package obs

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ayetstudios/sdk-go/obs"

var (
	manager     *Manager
	managerOnce sync.Once
)

// Manager coordinates OTEL setup for the SDK.
type Manager struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter
}

type noopSpanExporter struct{}

func (noopSpanExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (noopSpanExporter) Shutdown(context.Context) error { return nil }

// Init configures global tracing/metrics for the SDK. Safe to call once; the
// SDK works fine without it (spans and metrics become no-ops, or use whatever
// global providers the host application installed).
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	var initErr error
	managerOnce.Do(func() {
		if opts.ServiceName == "" {
			opts.ServiceName = "ayet-sdk"
		}
		if opts.SampleRatio <= 0 || opts.SampleRatio > 1 {
			opts.SampleRatio = 1
		}

		res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.ServiceVersion),
		))
		if err != nil {
			initErr = err
			return
		}

		var exporter sdktrace.SpanExporter = noopSpanExporter{}
		if opts.StdoutTrace {
			exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
			if err != nil {
				initErr = err
				return
			}
		}

		tracerProvider := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(opts.SampleRatio)),
			sdktrace.WithBatcher(exporter),
		)
		otel.SetTracerProvider(tracerProvider)

		var meterProvider *sdkmetric.MeterProvider
		if !opts.DisableMetrics {
			meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
			otel.SetMeterProvider(meterProvider)
		}

		tracer := tracerProvider.Tracer(instrumentationName)
		var meter metric.Meter
		if meterProvider != nil {
			meter = meterProvider.Meter(instrumentationName)
			installMetrics(meter)
		}

		manager = &Manager{
			tracerProvider: tracerProvider,
			meterProvider:  meterProvider,
			tracer:         tracer,
			meter:          meter,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return shutdown, nil
}

func shutdown(ctx context.Context) error {
	if manager == nil {
		return nil
	}
	var errs []error
	if manager.tracerProvider != nil {
		if err := manager.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if manager.meterProvider != nil {
		if err := manager.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Tracer returns the SDK tracer, falling back to the global provider when
// Init was never called.
func Tracer() trace.Tracer {
	if manager != nil && manager.tracer != nil {
		return manager.tracer
	}
	return otel.Tracer(instrumentationName)
}
