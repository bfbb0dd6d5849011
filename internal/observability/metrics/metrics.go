// Package metrics exposes the engine's OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	quotesPriced     metric.Int64Counter
	snapshotsWritten metric.Int64Counter
	missingSKUs      metric.Int64Counter
	inclusionGaps    metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported metrics exporter protocol %q", protocol)
	}
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "bathquote"
	}
	meter := provider.Meter(name)

	quotesPriced, err := meter.Int64Counter("bathquote_quotes_priced_total")
	if err != nil {
		return nil, err
	}
	snapshotsWritten, err := meter.Int64Counter("bathquote_snapshots_written_total")
	if err != nil {
		return nil, err
	}
	missingSKUs, err := meter.Int64Counter("bathquote_missing_skus_total")
	if err != nil {
		return nil, err
	}
	inclusionGaps, err := meter.Int64Counter("bathquote_inclusion_gaps_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		quotesPriced:     quotesPriced,
		snapshotsWritten: snapshotsWritten,
		missingSKUs:      missingSKUs,
		inclusionGaps:    inclusionGaps,
	}, nil
}

// RecordQuotePriced increments priced quote counts.
func (m *Metrics) RecordQuotePriced(ctx context.Context, bathroomType string) {
	if m == nil {
		return
	}
	m.quotesPriced.Add(ctx, 1, metric.WithAttributes(attribute.String("bathroom_type", bathroomType)))
}

// RecordSnapshotWritten increments persisted snapshot counts.
func (m *Metrics) RecordSnapshotWritten(ctx context.Context) {
	if m == nil {
		return
	}
	m.snapshotsWritten.Add(ctx, 1)
}

// RecordMissingSKU counts package references to SKUs absent from the catalog.
func (m *Metrics) RecordMissingSKU(ctx context.Context, sku string) {
	if m == nil {
		return
	}
	m.missingSKUs.Add(ctx, 1, metric.WithAttributes(attribute.String("sku", sku)))
}

// RecordInclusionGap counts bathroom types priced without an inclusion map.
func (m *Metrics) RecordInclusionGap(ctx context.Context, bathroomType string) {
	if m == nil {
		return
	}
	m.inclusionGaps.Add(ctx, 1, metric.WithAttributes(attribute.String("bathroom_type", bathroomType)))
}
