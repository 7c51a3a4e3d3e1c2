package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	matotel "github.com/adoptiq/maturity/internal/adapter/otel"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/middleware"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/port/database"
)

// PilotService manages the pilot accelerator workflow.
type PilotService struct {
	store   database.Store
	clock   clock.Clock
	events  *events
	metrics *matotel.Metrics
}

// NewPilotService creates a new PilotService.
func NewPilotService(store database.Store, clk clock.Clock, ev *events) *PilotService {
	return &PilotService{store: store, clock: clk, events: ev}
}

// Design registers a new pilot in designed state. The design is stored as
// submitted; the structural gate runs at approval time, not here.
func (s *PilotService) Design(ctx context.Context, req *pilot.DesignRequest) (*pilot.Pilot, error) {
	if err := pilot.ValidateDesign(req); err != nil {
		return nil, err
	}

	tenantID := middleware.TenantIDFromContext(ctx)
	// The referenced assessment must exist for this tenant.
	if _, err := s.store.GetAssessment(ctx, tenantID, req.AssessmentID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := &pilot.Pilot{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		AssessmentID:    req.AssessmentID,
		RoadmapID:       req.RoadmapID,
		Name:            req.Name,
		Status:          pilot.StatusDesigned,
		SuccessCriteria: req.SuccessCriteria,
		FailureModes:    req.FailureModes,
		Stakeholders:    req.Stakeholders,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreatePilot(ctx, p); err != nil {
		return nil, fmt.Errorf("create pilot: %w", err)
	}

	s.events.emit(ctx, subjectPilotDesigned, pilotDesignedPayload(p, now))
	return p, nil
}

// Get returns one pilot with its execution log.
func (s *PilotService) Get(ctx context.Context, id string) (*pilot.Pilot, error) {
	return s.store.GetPilot(ctx, middleware.TenantIDFromContext(ctx), id)
}

// List returns the pilots attached to an assessment.
func (s *PilotService) List(ctx context.Context, assessmentID string) ([]pilot.Pilot, error) {
	return s.store.ListPilots(ctx, middleware.TenantIDFromContext(ctx), assessmentID)
}

// Transition applies one lifecycle transition. Competing transitions against
// the same observed state are serialized by the version CAS: the loser gets
// ErrConflict, re-reads, and finds the transition now illegal or already
// applied.
func (s *PilotService) Transition(ctx context.Context, id string, to pilot.Status) (*pilot.Pilot, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	p, err := s.store.GetPilot(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	from := p.Status
	now := s.clock.Now()
	if err := pilot.Transition(p, to, now); err != nil {
		return nil, err
	}
	p.UpdatedAt = now

	if err := s.store.UpdatePilot(ctx, p, p.Version); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PilotTransitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", string(from)),
			attribute.String("to", string(to)),
		))
	}
	s.events.emit(ctx, subjectPilotStatusChanged, pilotStatusChangedPayload(p, from, now))
	return p, nil
}

// AppendLog ingests one weekly execution-log entry and rederives the
// advisory at-risk flag.
func (s *PilotService) AppendLog(ctx context.Context, id string, req *pilot.LogEntryRequest) (*pilot.Pilot, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	p, err := s.store.GetPilot(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entry, err := pilot.AppendLogEntry(p, req, now)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.NewString()
	p.UpdatedAt = now

	if err := s.store.UpdatePilot(ctx, p, p.Version); err != nil {
		return nil, err
	}
	return p, nil
}
