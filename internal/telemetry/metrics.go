package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/vpvn/bugreports/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const defaultMetricsInterval = 10 * time.Second

var meterProvider *sdkmetric.MeterProvider

// SetupMetrics pushes the intake counters to the OTLP collector every
// telemetry.metrics_interval_sec. It returns a nil provider when telemetry
// is disabled, leaving the counters as no-ops.
func SetupMetrics(cfg *config.Config) (*sdkmetric.MeterProvider, error) {
	if !cfg.Telemetry.Enabled || cfg.Telemetry.OtlpEndpoint == "" {
		return nil, nil
	}

	res, err := serviceResource(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(Endpoint(cfg.Telemetry.OtlpEndpoint)),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(metricsInterval(cfg.Telemetry.MetricsIntervalSec)))
	meterProvider = newMeterProvider(res, reader)
	otel.SetMeterProvider(meterProvider)
	return meterProvider, nil
}

func metricsInterval(sec int) time.Duration {
	if sec <= 0 {
		return defaultMetricsInterval
	}
	return time.Duration(sec) * time.Second
}

func newMeterProvider(res *resource.Resource, reader sdkmetric.Reader) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
}

// ShutdownMetrics flushes and stops the meter provider.
func ShutdownMetrics(ctx context.Context) error {
	if meterProvider != nil {
		return meterProvider.Shutdown(ctx)
	}
	return nil
}
