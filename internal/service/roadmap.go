package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	matotel "github.com/adoptiq/maturity/internal/adapter/otel"
	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
	"github.com/adoptiq/maturity/internal/middleware"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/port/database"
)

// RoadmapService generates and manages improvement roadmaps.
type RoadmapService struct {
	store   database.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	events  *events
	metrics *matotel.Metrics
}

// NewRoadmapService creates a new RoadmapService.
func NewRoadmapService(store database.Store, cat *catalog.Catalog, clk clock.Clock, ev *events) *RoadmapService {
	return &RoadmapService{store: store, catalog: cat, clock: clk, events: ev}
}

// Generate builds a new draft roadmap from a completed assessment's scores.
// Each call produces a fresh roadmap; earlier ones are left untouched.
func (s *RoadmapService) Generate(ctx context.Context, assessmentID string) (*roadmap.Roadmap, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	ctx, span := matotel.StartRoadmapSpan(ctx, assessmentID)
	defer span.End()

	a, err := s.store.GetAssessment(ctx, tenantID, assessmentID)
	if err != nil {
		return nil, err
	}
	if !a.Completed() {
		return nil, fmt.Errorf("assessment %s is not completed: %w", assessmentID, domain.ErrState)
	}

	weights := a.Weights
	if weights == nil {
		weights = s.catalog.DimensionWeights()
	}
	initiatives, err := roadmap.Generate(a.Scores, weights, s.catalog.Bands, s.catalog)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	r := &roadmap.Roadmap{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		AssessmentID:   assessmentID,
		Status:         roadmap.StatusDraft,
		CatalogVersion: s.catalog.Version,
		Initiatives:    initiatives,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i := range r.Initiatives {
		r.Initiatives[i].ID = uuid.NewString()
		r.Initiatives[i].RoadmapID = r.ID
	}

	if err := s.store.CreateRoadmap(ctx, r); err != nil {
		return nil, fmt.Errorf("create roadmap: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RoadmapsGenerated.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("initiatives", len(r.Initiatives)),
		))
	}
	s.events.emit(ctx, subjectRoadmapGenerated, roadmapGeneratedPayload(r, now))
	return r, nil
}

// Get returns one roadmap with its initiatives.
func (s *RoadmapService) Get(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	return s.store.GetRoadmap(ctx, middleware.TenantIDFromContext(ctx), id)
}

// List returns the roadmaps generated for an assessment, newest first.
func (s *RoadmapService) List(ctx context.Context, assessmentID string) ([]roadmap.Roadmap, error) {
	return s.store.ListRoadmaps(ctx, middleware.TenantIDFromContext(ctx), assessmentID)
}

// Publish promotes a draft roadmap to published and supersedes any
// previously published roadmap of the same assessment. Published roadmaps
// are immutable; publishing one that is not a draft fails with ErrState.
func (s *RoadmapService) Publish(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	r, err := s.store.GetRoadmap(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if r.Status != roadmap.StatusDraft {
		return nil, fmt.Errorf("roadmap %s is %s, only drafts publish: %w", id, r.Status, domain.ErrState)
	}

	if err := s.store.SupersedePublished(ctx, tenantID, r.AssessmentID, id); err != nil {
		return nil, fmt.Errorf("supersede published roadmap: %w", err)
	}
	return s.store.UpdateRoadmapStatus(ctx, tenantID, id, roadmap.StatusPublished, r.Version)
}
