// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/domain/report"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
)

// Store is the port interface for database operations. Every method is
// tenant-scoped: implementations must never return or mutate rows belonging
// to another tenant.
//
// Methods that take an expectedVersion perform an atomic compare-and-set on
// the entity's version column and return domain.ErrConflict when the stored
// version has moved on; the caller decides whether to re-read and retry.
type Store interface {
	// Assessments
	CreateAssessment(ctx context.Context, a *assessment.Assessment) error
	GetAssessment(ctx context.Context, tenantID, id string) (*assessment.Assessment, error)
	ListAssessments(ctx context.Context, tenantID string, filter assessment.ListFilter) ([]assessment.Assessment, error)
	// InsertResponses appends a response batch, bumps the assessment
	// version, and moves a draft assessment to in_progress. The version
	// bump guards concurrent submissions and scoring reads.
	InsertResponses(ctx context.Context, tenantID, assessmentID string, expectedVersion int, responses []assessment.Response) error
	ListResponses(ctx context.Context, tenantID, assessmentID string) ([]assessment.Response, error)
	// CompleteAssessment seals the assessment with its computed scores. The
	// CAS covers both version and the not-yet-completed status, so only one
	// of two racing scorers can win.
	CompleteAssessment(ctx context.Context, a *assessment.Assessment, expectedVersion int) error

	// Benchmarks
	UpsertBenchmark(ctx context.Context, b *benchmark.Benchmark) error
	GetBenchmark(ctx context.Context, industry, dim, period string) (*benchmark.Benchmark, error)
	// LatestBenchmark resolves the most recent period for a segment.
	LatestBenchmark(ctx context.Context, industry, dim string) (*benchmark.Benchmark, error)

	// Roadmaps
	CreateRoadmap(ctx context.Context, r *roadmap.Roadmap) error
	GetRoadmap(ctx context.Context, tenantID, id string) (*roadmap.Roadmap, error)
	ListRoadmaps(ctx context.Context, tenantID, assessmentID string) ([]roadmap.Roadmap, error)
	UpdateRoadmapStatus(ctx context.Context, tenantID, id string, status roadmap.Status, expectedVersion int) (*roadmap.Roadmap, error)
	// SupersedePublished flips any currently published roadmap of the
	// assessment to superseded, excluding the roadmap being published.
	SupersedePublished(ctx context.Context, tenantID, assessmentID, exceptID string) error

	// Pilots
	CreatePilot(ctx context.Context, p *pilot.Pilot) error
	GetPilot(ctx context.Context, tenantID, id string) (*pilot.Pilot, error)
	ListPilots(ctx context.Context, tenantID, assessmentID string) ([]pilot.Pilot, error)
	// UpdatePilot writes status, at-risk flag, timestamps, and any new
	// execution-log entries in one CAS-guarded transaction.
	UpdatePilot(ctx context.Context, p *pilot.Pilot, expectedVersion int) error

	// Reports
	CreateReport(ctx context.Context, r *report.Report) error
	GetReport(ctx context.Context, tenantID, id string) (*report.Report, error)
	ListReports(ctx context.Context, tenantID, assessmentID string) ([]report.Report, error)
}
