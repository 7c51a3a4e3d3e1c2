package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	matotel "github.com/adoptiq/maturity/internal/adapter/otel"
	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/domain/report"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
	"github.com/adoptiq/maturity/internal/middleware"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/port/database"
)

// ReportService assembles and stores composed maturity reports.
type ReportService struct {
	store      database.Store
	benchmarks *BenchmarkService
	clock      clock.Clock
	events     *events
	metrics    *matotel.Metrics
}

// NewReportService creates a new ReportService.
func NewReportService(store database.Store, benchmarks *BenchmarkService, clk clock.Clock, ev *events) *ReportService {
	return &ReportService{store: store, benchmarks: benchmarks, clock: clk, events: ev}
}

// GenerateRequest selects the report's sources. Empty IDs mean "latest":
// the most recently published roadmap and the most recent pilot.
type GenerateRequest struct {
	RoadmapID string `json:"roadmap_id,omitempty"`
	PilotID   string `json:"pilot_id,omitempty"`
}

// Generate assembles a report for a completed assessment. The benchmark
// comparison, roadmap, and pilot load concurrently; a missing benchmark or
// pilot degrades to an absent section rather than failing the report.
func (s *ReportService) Generate(ctx context.Context, assessmentID string, req *GenerateRequest) (*report.Report, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	ctx, span := matotel.StartReportSpan(ctx, assessmentID)
	defer span.End()

	a, err := s.store.GetAssessment(ctx, tenantID, assessmentID)
	if err != nil {
		return nil, err
	}
	if !a.Completed() {
		return nil, fmt.Errorf("assessment %s is not completed: %w", assessmentID, domain.ErrState)
	}

	var (
		cmp *benchmark.Comparison
		rm  *roadmap.Roadmap
		pl  *pilot.Pilot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.benchmarks.CompareOverall(gctx, assessmentID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		cmp = c
		return err
	})
	g.Go(func() error {
		r, err := s.resolveRoadmap(gctx, tenantID, assessmentID, req.RoadmapID)
		rm = r
		return err
	})
	g.Go(func() error {
		p, err := s.resolvePilot(gctx, tenantID, assessmentID, req.PilotID)
		pl = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rep, err := report.Assemble(a, cmp, rm, pl, now)
	if err != nil {
		return nil, err
	}
	rep.ID = uuid.NewString()

	if err := s.store.CreateReport(ctx, rep); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ReportsGenerated.Add(ctx, 1)
	}
	s.events.emit(ctx, subjectReportGenerated, reportGeneratedPayload(rep, now))
	return rep, nil
}

// Get returns one stored report.
func (s *ReportService) Get(ctx context.Context, id string) (*report.Report, error) {
	return s.store.GetReport(ctx, middleware.TenantIDFromContext(ctx), id)
}

// List returns the reports generated for an assessment, newest first.
func (s *ReportService) List(ctx context.Context, assessmentID string) ([]report.Report, error) {
	return s.store.ListReports(ctx, middleware.TenantIDFromContext(ctx), assessmentID)
}

// resolveRoadmap picks the report's roadmap: the requested one, else the
// published roadmap, else the newest draft, else none.
func (s *ReportService) resolveRoadmap(ctx context.Context, tenantID, assessmentID, roadmapID string) (*roadmap.Roadmap, error) {
	if roadmapID != "" {
		r, err := s.store.GetRoadmap(ctx, tenantID, roadmapID)
		if err != nil {
			return nil, err
		}
		if r.AssessmentID != assessmentID {
			return nil, fmt.Errorf("roadmap %s does not belong to assessment %s: %w",
				roadmapID, assessmentID, domain.ErrValidation)
		}
		return r, nil
	}

	roadmaps, err := s.store.ListRoadmaps(ctx, tenantID, assessmentID)
	if err != nil {
		return nil, err
	}
	for i := range roadmaps {
		if roadmaps[i].Published() {
			return &roadmaps[i], nil
		}
	}
	if len(roadmaps) > 0 {
		return &roadmaps[0], nil
	}
	return nil, nil
}

// resolvePilot picks the report's pilot: the requested one, else the newest,
// else none.
func (s *ReportService) resolvePilot(ctx context.Context, tenantID, assessmentID, pilotID string) (*pilot.Pilot, error) {
	if pilotID != "" {
		p, err := s.store.GetPilot(ctx, tenantID, pilotID)
		if err != nil {
			return nil, err
		}
		if p.AssessmentID != assessmentID {
			return nil, fmt.Errorf("pilot %s does not belong to assessment %s: %w",
				pilotID, assessmentID, domain.ErrValidation)
		}
		return p, nil
	}

	pilots, err := s.store.ListPilots(ctx, tenantID, assessmentID)
	if err != nil {
		return nil, err
	}
	if len(pilots) > 0 {
		return &pilots[0], nil
	}
	return nil, nil
}
