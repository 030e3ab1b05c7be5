package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "bugreports.intake"

var (
	reportsReceived metric.Int64Counter
	bugsCreated     metric.Int64Counter
	reportsRejected metric.Int64Counter
)

// InitReportMetrics registers the intake instruments on the global meter
// provider. Recording before it runs is a no-op.
func InitReportMetrics() error {
	meter := otel.Meter(meterName)

	var err error
	reportsReceived, err = meter.Int64Counter(
		"bugreports.reports.received",
		metric.WithDescription("Number of crash reports recorded"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return err
	}

	bugsCreated, err = meter.Int64Counter(
		"bugreports.bugs.created",
		metric.WithDescription("Number of new bugs created by report intake"),
		metric.WithUnit("{bug}"),
	)
	if err != nil {
		return err
	}

	reportsRejected, err = meter.Int64Counter(
		"bugreports.reports.rejected",
		metric.WithDescription("Number of crash reports rejected before persisting"),
		metric.WithUnit("{report}"),
	)
	return err
}

// RecordReport counts one persisted report.
func RecordReport(ctx context.Context, projectID string, newBug bool) {
	if reportsReceived != nil {
		reportsReceived.Add(ctx, 1, metric.WithAttributes(
			attribute.String("project", projectID),
			attribute.Bool("new_bug", newBug),
		))
	}
	if newBug && bugsCreated != nil {
		bugsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("project", projectID)))
	}
}

// RecordRejectedReport counts a report that failed with reason
// ("validation", "unknown_project" or "internal").
func RecordRejectedReport(ctx context.Context, reason string) {
	if reportsRejected != nil {
		reportsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}
