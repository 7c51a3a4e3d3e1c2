package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	matotel "github.com/adoptiq/maturity/internal/adapter/otel"
	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/middleware"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/port/database"
)

// AssessmentService handles assessment intake, response submission, and
// scoring.
type AssessmentService struct {
	store   database.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	events  *events
	metrics *matotel.Metrics
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(store database.Store, cat *catalog.Catalog, clk clock.Clock, ev *events) *AssessmentService {
	return &AssessmentService{store: store, catalog: cat, clock: clk, events: ev}
}

// Create registers a new draft assessment. Custom dimension weights are
// accepted at intake; otherwise the catalog's weight table applies.
func (s *AssessmentService) Create(ctx context.Context, req *assessment.CreateRequest) (*assessment.Assessment, error) {
	if err := assessment.ValidateCreate(req); err != nil {
		return nil, err
	}

	weights := req.Weights
	if weights == nil {
		weights = s.catalog.DimensionWeights()
	}

	now := s.clock.Now()
	a := &assessment.Assessment{
		ID:               uuid.NewString(),
		TenantID:         middleware.TenantIDFromContext(ctx),
		OrganizationName: req.OrganizationName,
		Industry:         req.Industry,
		OrganizationSize: req.OrganizationSize,
		Status:           assessment.StatusDraft,
		Weights:          weights,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreateAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AssessmentsCreated.Add(ctx, 1, metric.WithAttributes(
			attribute.String("industry", a.Industry),
		))
	}
	s.events.emit(ctx, subjectAssessmentCreated, assessmentCreatedPayload(a, now))
	return a, nil
}

// Get returns one assessment.
func (s *AssessmentService) Get(ctx context.Context, id string) (*assessment.Assessment, error) {
	return s.store.GetAssessment(ctx, middleware.TenantIDFromContext(ctx), id)
}

// List returns the tenant's assessments, optionally filtered.
func (s *AssessmentService) List(ctx context.Context, filter assessment.ListFilter) ([]assessment.Assessment, error) {
	return s.store.ListAssessments(ctx, middleware.TenantIDFromContext(ctx), filter)
}

// SubmitResponses appends a batch of diagnostic responses. Submissions are
// version-checked: a concurrent submission or scoring pass surfaces as
// ErrConflict and the caller retries with fresh state. Completed assessments
// reject submissions outright.
func (s *AssessmentService) SubmitResponses(ctx context.Context, id string, req *assessment.SubmitResponsesRequest) error {
	if err := assessment.ValidateResponses(req.Responses); err != nil {
		return err
	}

	tenantID := middleware.TenantIDFromContext(ctx)
	a, err := s.store.GetAssessment(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if a.Completed() {
		return fmt.Errorf("assessment %s is completed and sealed: %w", id, domain.ErrState)
	}

	now := s.clock.Now()
	responses := make([]assessment.Response, 0, len(req.Responses))
	for _, in := range req.Responses {
		responses = append(responses, assessment.Response{
			ID:           uuid.NewString(),
			AssessmentID: id,
			QuestionID:   in.QuestionID,
			Dimension:    in.Dimension,
			Value:        in.Value,
			Weight:       in.Weight,
			CreatedAt:    now,
		})
	}
	return s.store.InsertResponses(ctx, tenantID, id, a.Version, responses)
}

// Score computes dimension and overall scores, classifies the maturity
// level, and seals the assessment. Only one of two racing Score calls can
// win: the loser observes the already-completed assessment and fails with
// ErrState.
func (s *AssessmentService) Score(ctx context.Context, id string) (*assessment.Assessment, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	ctx, span := matotel.StartScoringSpan(ctx, id, tenantID)
	defer span.End()
	start := time.Now()

	a, err := s.store.GetAssessment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a.Completed() {
		return nil, fmt.Errorf("assessment %s is already scored: %w", id, domain.ErrState)
	}

	responses, err := s.store.ListResponses(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	result, err := assessment.ComputeScores(responses, s.weightsFor(a))
	if err != nil {
		return nil, err
	}
	level, label, err := s.catalog.Bands.Classify(result.Overall)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	a.Scores = result.Dimensions
	a.OverallScore = &result.Overall
	a.MaturityLevel = &level
	a.MaturityLabel = label
	a.Status = assessment.StatusCompleted
	a.UpdatedAt = now
	a.CompletedAt = &now

	if err := s.store.CompleteAssessment(ctx, a, a.Version); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Re-read to tell a lost race to another scorer apart from a
			// concurrent response submission.
			fresh, readErr := s.store.GetAssessment(ctx, tenantID, id)
			if readErr == nil && fresh.Completed() {
				return nil, fmt.Errorf("assessment %s was scored concurrently: %w", id, domain.ErrState)
			}
		}
		return nil, err
	}

	if s.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("industry", a.Industry),
			attribute.Int("maturity.level", level),
		)
		s.metrics.AssessmentsScored.Add(ctx, 1, attrs)
		s.metrics.ScoringDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	s.events.emit(ctx, subjectAssessmentCompleted, assessmentCompletedPayload(a, now))
	return a, nil
}

// Breakdown returns the per-dimension score projection of a completed
// assessment, including the contributing responses.
func (s *AssessmentService) Breakdown(ctx context.Context, id string) (*assessment.Breakdown, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	a, err := s.store.GetAssessment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return assessment.BuildBreakdown(a, responses, s.weightsFor(a))
}

// weightsFor returns the assessment's weight table, falling back to the
// catalog default.
func (s *AssessmentService) weightsFor(a *assessment.Assessment) dimension.Weights {
	if a.Weights != nil {
		return a.Weights
	}
	return s.catalog.DimensionWeights()
}
