package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/ghuser/supermarket/services/product"

type serviceMetrics struct {
	operations   metric.Int64Counter
	restocks     metric.Int64Counter
	restockUnits metric.Int64Counter
}

func newServiceMetrics() (*serviceMetrics, error) {
	meter := otel.Meter(instrumentationName)

	operations, err := meter.Int64Counter("supermarket_operations_total",
		metric.WithDescription("Product service operations by name and outcome"))
	if err != nil {
		return nil, fmt.Errorf("operations counter: %w", err)
	}
	restocks, err := meter.Int64Counter("supermarket_restocks_total",
		metric.WithDescription("Supplier restock calls that delivered stock"))
	if err != nil {
		return nil, fmt.Errorf("restocks counter: %w", err)
	}
	restockUnits, err := meter.Int64Counter("supermarket_restock_units_total",
		metric.WithDescription("Units delivered by the supplier"))
	if err != nil {
		return nil, fmt.Errorf("restock units counter: %w", err)
	}

	return &serviceMetrics{operations: operations, restocks: restocks, restockUnits: restockUnits}, nil
}

func (m *serviceMetrics) operation(ctx context.Context, name string, outcome Outcome) {
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", name),
		attribute.String("outcome", outcome.String()),
	))
}

func (m *serviceMetrics) restocked(ctx context.Context, units uint) {
	m.restocks.Add(ctx, 1)
	m.restockUnits.Add(ctx, int64(units))
}
