package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "maturity"

// StartScoringSpan starts a span covering assessment scoring.
func StartScoringSpan(ctx context.Context, assessmentID, tenantID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "scoring",
		trace.WithAttributes(
			attribute.String("assessment.id", assessmentID),
			attribute.String("tenant.id", tenantID),
		),
	)
}

// StartRoadmapSpan starts a span covering roadmap generation.
func StartRoadmapSpan(ctx context.Context, assessmentID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "roadmap.generate",
		trace.WithAttributes(
			attribute.String("assessment.id", assessmentID),
		),
	)
}

// StartReportSpan starts a span covering report assembly.
func StartReportSpan(ctx context.Context, assessmentID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "report.generate",
		trace.WithAttributes(
			attribute.String("assessment.id", assessmentID),
		),
	)
}
