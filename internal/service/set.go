package service

import (
	matotel "github.com/adoptiq/maturity/internal/adapter/otel"
	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/port/broadcast"
	"github.com/adoptiq/maturity/internal/port/cache"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/port/database"
	"github.com/adoptiq/maturity/internal/port/messagequeue"
	"github.com/adoptiq/maturity/internal/resilience"
)

// Set bundles all services over one shared event emitter.
type Set struct {
	Assessments *AssessmentService
	Benchmarks  *BenchmarkService
	Roadmaps    *RoadmapService
	Pilots      *PilotService
	Reports     *ReportService
}

// NewSet wires the full service layer. queue, hub, breaker, and metrics may
// be nil; event emission and instrumentation degrade gracefully without them.
func NewSet(
	store database.Store,
	cat *catalog.Catalog,
	c cache.Cache,
	clk clock.Clock,
	queue messagequeue.Queue,
	hub broadcast.Broadcaster,
	breaker *resilience.Breaker,
	metrics *matotel.Metrics,
) *Set {
	ev := newEvents(queue, hub, breaker)
	benchmarks := NewBenchmarkService(store, c, clk)

	assessments := NewAssessmentService(store, cat, clk, ev)
	assessments.metrics = metrics
	roadmaps := NewRoadmapService(store, cat, clk, ev)
	roadmaps.metrics = metrics
	pilots := NewPilotService(store, clk, ev)
	pilots.metrics = metrics
	reports := NewReportService(store, benchmarks, clk, ev)
	reports.metrics = metrics

	return &Set{
		Assessments: assessments,
		Benchmarks:  benchmarks,
		Roadmaps:    roadmaps,
		Pilots:      pilots,
		Reports:     reports,
	}
}
