// Package report assembles the composed maturity report artifact.
package report

import (
	"fmt"
	"time"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
)

// Scores is the scoring snapshot embedded in a report.
type Scores struct {
	Dimensions map[dimension.Dimension]float64 `json:"dimension_scores"`
	Overall    float64                         `json:"overall_score"`
	Level      int                             `json:"maturity_level"`
	Label      string                          `json:"maturity_label"`
}

// PilotSummary is the pilot slice of a report: identity plus the fields a
// reader acts on, not the full execution log.
type PilotSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Status      pilot.Status `json:"status"`
	AtRisk      bool         `json:"at_risk"`
	WeeksLogged int          `json:"weeks_logged"`
}

// Report is the derived aggregate handed to consumers. It references its
// sources by identity and carries computed values only; regenerating with the
// same inputs yields the same report apart from identity and timestamps.
type Report struct {
	ID               string                `json:"id"`
	TenantID         string                `json:"tenant_id"`
	AssessmentID     string                `json:"assessment_id"`
	OrganizationName string                `json:"organization_name"`
	Industry         string                `json:"industry"`
	OrganizationSize string                `json:"organization_size"`
	Scores           Scores                `json:"scores"`
	Benchmark        *benchmark.Comparison `json:"benchmark,omitempty"`
	LowConfidence    bool                  `json:"low_confidence,omitempty"`
	RoadmapID        string                `json:"roadmap_id,omitempty"`
	Initiatives      []roadmap.Initiative  `json:"initiatives,omitempty"`
	Pilot            *PilotSummary         `json:"pilot,omitempty"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// Assemble composes one report from its sources. The assessment must be
// completed; benchmark, roadmap, and pilot are optional and omitted when nil.
// Assemble is pure: identity assignment and persistence belong to the caller.
func Assemble(a *assessment.Assessment, cmp *benchmark.Comparison, rm *roadmap.Roadmap, pl *pilot.Pilot, now time.Time) (*Report, error) {
	if !a.Completed() || a.OverallScore == nil || a.MaturityLevel == nil {
		return nil, fmt.Errorf("assessment %s is not completed: %w", a.ID, domain.ErrState)
	}

	r := &Report{
		TenantID:         a.TenantID,
		AssessmentID:     a.ID,
		OrganizationName: a.OrganizationName,
		Industry:         a.Industry,
		OrganizationSize: a.OrganizationSize,
		Scores: Scores{
			Dimensions: a.Scores,
			Overall:    *a.OverallScore,
			Level:      *a.MaturityLevel,
			Label:      a.MaturityLabel,
		},
		GeneratedAt: now,
	}

	if cmp != nil {
		r.Benchmark = cmp
		r.LowConfidence = cmp.PeerCount < benchmark.MinReliablePeers
	}
	if rm != nil {
		r.RoadmapID = rm.ID
		r.Initiatives = rm.Initiatives
	}
	if pl != nil {
		r.Pilot = &PilotSummary{
			ID:          pl.ID,
			Name:        pl.Name,
			Status:      pl.Status,
			AtRisk:      pl.AtRisk,
			WeeksLogged: len(pl.ExecutionLog),
		}
	}
	return r, nil
}
