package instrumentation

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNew_Defaults(t *testing.T) {
	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if inst.Metrics() == nil {
		t.Error("New() metrics is nil")
	}
	if inst.Meter() == nil {
		t.Error("New() meter is nil")
	}
	if inst.Tracer() == nil {
		t.Error("New() tracer is nil")
	}
	if inst.config.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q, want %q", inst.config.ServiceName, DefaultServiceName)
	}
}

func TestNew_DisabledIgnoresProviders(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	inst, err := New(Config{
		Enabled:        false,
		TracerProvider: tp,
		MeterProvider:  noop.NewMeterProvider(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if inst.TracerProvider() == tp {
		t.Error("disabled instrumentation should not use the supplied tracer provider")
	}
}

func TestNew_EnabledUsesProviders(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	inst, err := New(Config{
		ServiceName:    "test-service",
		ServiceVersion: "0.1.0",
		Enabled:        true,
		TracerProvider: tp,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if inst.TracerProvider() != tp {
		t.Error("enabled instrumentation should use the supplied tracer provider")
	}

	// Spans from the SDK provider must be recordable end to end.
	_, span := inst.Tracer().Start(context.Background(), "yandexid.exchange_code")
	span.End()
}

func TestRecordMeasurements_NoopSafe(t *testing.T) {
	inst, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Recording against no-op instruments must never panic.
	ctx := context.Background()
	inst.Metrics().RecordTokenOperation(ctx, "exchange_code", OutcomeSuccess, 15*time.Millisecond)
	inst.Metrics().RecordProviderError(ctx, "refresh_token", "invalid_grant")
}

func TestShutdown(t *testing.T) {
	inst, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	calls := 0
	wantErr := errors.New("shutdown failed")
	inst.RegisterShutdown(func(context.Context) error {
		calls++
		return wantErr
	})
	inst.RegisterShutdown(func(context.Context) error {
		calls++
		return nil
	})

	if err := inst.Shutdown(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Shutdown() error = %v, want %v", err, wantErr)
	}
	if calls != 2 {
		t.Errorf("shutdown funcs called %d times, want 2", calls)
	}

	// Second shutdown is a no-op.
	if err := inst.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("shutdown funcs called %d times after second Shutdown, want 2", calls)
	}
}
