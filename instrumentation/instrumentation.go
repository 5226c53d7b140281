package instrumentation

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// scope is the instrumentation scope name for all meters and tracers.
const scope = "github.com/go-yandex/yandexid"

// DefaultServiceName is used when the config names no service.
const DefaultServiceName = "yandexid"

// Config holds instrumentation configuration.
type Config struct {
	// ServiceName identifies the consuming service (default: "yandexid").
	ServiceName string

	// ServiceVersion is the version of the consuming service.
	ServiceVersion string

	// Enabled controls whether instrumentation is active. When false,
	// no-op providers are used.
	Enabled bool

	// Resource allows custom resource attributes. If nil, a resource is
	// built from ServiceName and ServiceVersion.
	Resource *resource.Resource

	// MeterProvider overrides the meter provider. Defaults to no-op; set
	// this to an SDK provider wired to your exporter.
	MeterProvider metric.MeterProvider

	// TracerProvider overrides the tracer provider. Defaults to no-op; set
	// this to an SDK provider wired to your exporter.
	TracerProvider trace.TracerProvider
}

// Instrumentation bundles the providers and instruments the SDK records into.
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics

	shutdownFuncs []func(context.Context) error
	shutdownOnce  sync.Once
}

// New creates a new instrumentation instance.
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}

	res := config.Resource
	if res == nil {
		var err error
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:         config,
		resource:       res,
		meterProvider:  noop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}

	if config.Enabled {
		if config.MeterProvider != nil {
			inst.meterProvider = config.MeterProvider
		}
		if config.TracerProvider != nil {
			inst.tracerProvider = config.TracerProvider
		}
	}

	metrics, err := newMetrics(inst.meterProvider.Meter(scope))
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	inst.metrics = metrics

	return inst, nil
}

// Meter returns the SDK's meter.
func (i *Instrumentation) Meter() metric.Meter {
	return i.meterProvider.Meter(scope)
}

// Tracer returns the SDK's tracer.
func (i *Instrumentation) Tracer() trace.Tracer {
	return i.tracerProvider.Tracer(scope)
}

// Metrics returns the metrics holder for recording measurements.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// MeterProvider returns the underlying meter provider.
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}

// TracerProvider returns the underlying tracer provider.
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}

// RegisterShutdown registers a function to run during Shutdown. Not safe to
// call after initialization has completed.
func (i *Instrumentation) RegisterShutdown(fn func(context.Context) error) {
	i.shutdownFuncs = append(i.shutdownFuncs, fn)
}

// Shutdown runs registered shutdown functions exactly once, returning the
// first error while continuing through the rest.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var shutdownErr error
	i.shutdownOnce.Do(func() {
		for _, fn := range i.shutdownFuncs {
			if err := fn(ctx); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
	})
	return shutdownErr
}
