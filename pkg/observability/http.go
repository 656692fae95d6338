package observability

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/roxydental/roxydental_backend/pkg/reqctx"
)

const (
	instrumentationName = "github.com/roxydental/roxydental_backend/pkg/observability"
	HeaderTraceID       = "X-Trace-Id"
)

// StatusResolver maps a handler error to the status the error handler will
// eventually write. The span ends before fiber's ErrorHandler runs, so the
// response status alone is not yet final.
type StatusResolver func(error) int

type httpInstruments struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	latency  metric.Float64Histogram
	status   StatusResolver
}

// HTTPMiddleware opens a server span per request and records request count
// and latency keyed by method, route template and final status.
func HTTPMiddleware(status StatusResolver) fiber.Handler {
	meter := otel.Meter(instrumentationName)
	in := &httpInstruments{tracer: otel.Tracer(instrumentationName), status: status}
	var err error
	// On error the SDK still hands back a usable no-op instrument.
	if in.requests, err = meter.Int64Counter("roxydental_http_requests_total",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}")); err != nil {
		slog.Warn("http request counter unavailable", "error", err)
	}
	if in.latency, err = meter.Float64Histogram("roxydental_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s")); err != nil {
		slog.Warn("http latency histogram unavailable", "error", err)
	}
	return in.handle
}

func (in *httpInstruments) handle(c fiber.Ctx) error {
	parent := otel.GetTextMapPropagator().Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))

	method, route := c.Method(), c.Route().Path
	ctx, span := in.tracer.Start(parent, method+" "+route,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
			attribute.String("client.address", c.IP()),
		),
	)
	defer span.End()

	if sc := span.SpanContext(); sc.HasTraceID() {
		ctx = reqctx.WithTrace(ctx, &reqctx.TraceInfo{TraceID: sc.TraceID().String(), SpanID: sc.SpanID().String()})
		c.Set(HeaderTraceID, sc.TraceID().String())
	}
	c.SetContext(ctx)

	began := time.Now()
	err := c.Next()
	code := in.statusOf(c, err)

	// Route is resolved only after routing; unmatched paths share one series.
	route = c.Route().Path
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", code),
	)
	in.requests.Add(ctx, 1, attrs)
	in.latency.Record(ctx, time.Since(began).Seconds(), attrs)

	span.SetAttributes(attribute.Int("http.response.status_code", code))
	if code >= http.StatusInternalServerError {
		span.SetStatus(otelcodes.Error, http.StatusText(code))
		if err != nil {
			span.RecordError(err)
		}
	}
	return err
}

func (in *httpInstruments) statusOf(c fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if in.status != nil {
		return in.status(err)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return http.StatusInternalServerError
}
