package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "maturity"

// Metrics holds all metric instruments for the decision engine.
type Metrics struct {
	AssessmentsCreated metric.Int64Counter
	AssessmentsScored  metric.Int64Counter
	RoadmapsGenerated  metric.Int64Counter
	PilotTransitions   metric.Int64Counter
	ReportsGenerated   metric.Int64Counter
	ScoringDuration    metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AssessmentsCreated, err = meter.Int64Counter("maturity.assessments.created",
		metric.WithDescription("Number of assessments created"))
	if err != nil {
		return nil, err
	}

	m.AssessmentsScored, err = meter.Int64Counter("maturity.assessments.scored",
		metric.WithDescription("Number of assessments scored to completion"))
	if err != nil {
		return nil, err
	}

	m.RoadmapsGenerated, err = meter.Int64Counter("maturity.roadmaps.generated",
		metric.WithDescription("Number of roadmaps generated"))
	if err != nil {
		return nil, err
	}

	m.PilotTransitions, err = meter.Int64Counter("maturity.pilots.transitions",
		metric.WithDescription("Number of pilot status transitions"))
	if err != nil {
		return nil, err
	}

	m.ReportsGenerated, err = meter.Int64Counter("maturity.reports.generated",
		metric.WithDescription("Number of readiness reports generated"))
	if err != nil {
		return nil, err
	}

	m.ScoringDuration, err = meter.Float64Histogram("maturity.scoring.duration_seconds",
		metric.WithDescription("Assessment scoring duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
