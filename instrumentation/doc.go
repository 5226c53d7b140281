// Package instrumentation provides optional OpenTelemetry metrics and
// tracing for the SDK's token operations. When disabled, no-op providers are
// used and instrumentation has zero overhead.
package instrumentation
