package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/roxydental/roxydental_backend/config"
)

const defaultServiceName = "roxydental-api"

// Provider owns the SDK providers installed as the otel globals. Either field
// is nil when that signal is switched off.
type Provider struct {
	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
}

// Setup installs tracing and metrics according to cfg.Observability. Metrics
// are exposed through the default prometheus registry; traces go to the OTLP
// endpoint, or are sampled but dropped when no endpoint is set so trace ids
// still reach the logs.
func Setup(ctx context.Context, cfg *config.Config) (*Provider, error) {
	obs := cfg.Observability
	name := obs.ServiceName
	if name == "" {
		name = defaultServiceName
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes("",
		semconv.ServiceName(name),
		semconv.ServiceVersion(obs.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Server.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	p := &Provider{}
	if obs.Tracing.Enabled {
		if p.traces, err = newTracerProvider(ctx, res, obs.Tracing); err != nil {
			return nil, err
		}
		otel.SetTracerProvider(p.traces)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}
	if obs.Metrics.Enabled {
		exporter, err := prometheus.New()
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, fmt.Errorf("prometheus exporter: %w", err)
		}
		p.metrics = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(exporter))
		otel.SetMeterProvider(p.metrics)
	}
	return p, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	ratio := cfg.SamplingRate
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}
	if cfg.OTLPEndpoint != "" {
		exp := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			exp = append(exp, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, exp...)
		if err != nil {
			return nil, fmt.Errorf("otlp trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

// Shutdown flushes pending spans and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.traces != nil {
		errs = append(errs, p.traces.Shutdown(ctx))
	}
	if p.metrics != nil {
		errs = append(errs, p.metrics.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
