package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ClinicMetrics counts clinic events. A nil *ClinicMetrics is a no-op.
type ClinicMetrics struct {
	visits      metric.Int64Counter
	treatments  metric.Int64Counter
	payments    metric.Int64Counter
	revenue     metric.Float64Counter
	commissions metric.Float64Counter
}

// NewClinicMetrics registers the counters on the global meter provider.
func NewClinicMetrics() (*ClinicMetrics, error) {
	return NewClinicMetricsWith(otel.Meter(instrumentationName))
}

func NewClinicMetricsWith(meter metric.Meter) (*ClinicMetrics, error) {
	var (
		m   ClinicMetrics
		err error
	)
	if m.visits, err = meter.Int64Counter("roxydental_visits_created_total",
		metric.WithDescription("Visits registered at the front desk")); err != nil {
		return nil, err
	}
	if m.treatments, err = meter.Int64Counter("roxydental_treatments_created_total",
		metric.WithDescription("Treatments recorded against visits")); err != nil {
		return nil, err
	}
	if m.payments, err = meter.Int64Counter("roxydental_payments_created_total",
		metric.WithDescription("Payments created by method and status")); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Float64Counter("roxydental_payments_amount_total",
		metric.WithDescription("Sum of settled payment amounts"), metric.WithUnit("IDR")); err != nil {
		return nil, err
	}
	if m.commissions, err = meter.Float64Counter("roxydental_commission_amount_total",
		metric.WithDescription("Commission earned by staff, by service category"), metric.WithUnit("IDR")); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *ClinicMetrics) VisitCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.visits.Add(ctx, 1)
}

func (m *ClinicMetrics) TreatmentCreated(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.treatments.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (m *ClinicMetrics) PaymentCreated(ctx context.Context, method, status string, amount float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("method", method), attribute.String("status", status))
	m.payments.Add(ctx, 1, attrs)
	if status == "PAID" {
		m.revenue.Add(ctx, amount, attrs)
	}
}

// PaymentSettled adds revenue for a payment that was created pending and later settled.
func (m *ClinicMetrics) PaymentSettled(ctx context.Context, method string, amount float64) {
	if m == nil {
		return
	}
	m.revenue.Add(ctx, amount, metric.WithAttributes(attribute.String("method", method), attribute.String("status", "PAID")))
}

func (m *ClinicMetrics) CommissionRecorded(ctx context.Context, category string, amount float64) {
	if m == nil {
		return
	}
	m.commissions.Add(ctx, amount, metric.WithAttributes(attribute.String("category", category)))
}
