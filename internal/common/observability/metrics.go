package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	fanoutCounter  otelmetric.Int64Counter
	fanoutDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	fanoutCounter, _ := meter.Int64Counter(
		"fanouts.processed",
		otelmetric.WithDescription("Number of fan-outs processed"),
	)

	fanoutDuration, _ := meter.Float64Histogram(
		"fanouts.duration",
		otelmetric.WithDescription("Fan-out processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		fanoutCounter:  fanoutCounter,
		fanoutDuration: fanoutDuration,
	}
}

func (o *Observability) RecordFanOut(ctx context.Context, stage string, status string) {
	if o.fanoutCounter != nil {
		o.fanoutCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordFanOutDuration(ctx context.Context, duration time.Duration, stage string) {
	if o.fanoutDuration != nil {
		o.fanoutDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("stage", stage),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
