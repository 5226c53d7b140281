package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Token operation outcomes recorded with every measurement.
const (
	OutcomeSuccess        = "success"
	OutcomeProviderError  = "provider_error"
	OutcomeTransportError = "transport_error"
)

// Attribute keys. Only metadata is recorded here, never token material or
// client secrets.
const (
	AttrOperation = "oauth.operation"
	AttrOutcome   = "oauth.outcome"
	AttrErrorCode = "oauth.error_code"
)

// Metrics holds the SDK's metric instruments.
type Metrics struct {
	// TokenOperations counts token-lifecycle calls by operation and outcome.
	TokenOperations metric.Int64Counter

	// TokenOperationDuration measures token-lifecycle call latency.
	TokenOperationDuration metric.Float64Histogram

	// ProviderErrors counts provider-reported OAuth errors by code.
	ProviderErrors metric.Int64Counter
}

// newMetrics creates and registers all metric instruments.
func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.TokenOperations, err = meter.Int64Counter(
		"yandexid.token.operations",
		metric.WithDescription("Total number of token-lifecycle operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token.operations counter: %w", err)
	}

	m.TokenOperationDuration, err = meter.Float64Histogram(
		"yandexid.token.operation.duration",
		metric.WithDescription("Token-lifecycle operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token.operation.duration histogram: %w", err)
	}

	m.ProviderErrors, err = meter.Int64Counter(
		"yandexid.provider.errors",
		metric.WithDescription("Provider-reported OAuth errors by code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.errors counter: %w", err)
	}

	return m, nil
}

// RecordTokenOperation records one completed token-lifecycle call.
func (m *Metrics) RecordTokenOperation(ctx context.Context, operation, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrOutcome, outcome),
	)
	m.TokenOperations.Add(ctx, 1, attrs)
	m.TokenOperationDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordProviderError records one provider-reported OAuth error.
func (m *Metrics) RecordProviderError(ctx context.Context, operation, code string) {
	m.ProviderErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrErrorCode, code),
	))
}
