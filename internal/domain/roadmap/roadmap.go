// Package roadmap contains the improvement roadmap entity and the
// priority-ranked initiative generator.
package roadmap

import (
	"time"

	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// Status is the roadmap lifecycle state. A draft may be regenerated or
// published; a published roadmap is immutable and is only ever superseded by
// publishing a newer one for the same assessment.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPublished  Status = "published"
	StatusSuperseded Status = "superseded"
)

// Timeframe buckets an initiative by expected delivery horizon, derived from
// the template's effort tier.
type Timeframe string

const (
	TimeframeQuickWin  Timeframe = "quick-win" // under 3 months
	TimeframeMidTerm   Timeframe = "mid-term"  // 3 to 9 months
	TimeframeStrategic Timeframe = "strategic" // over 9 months
)

// TimeframeForEffort maps a template effort tier to its delivery bucket.
func TimeframeForEffort(e catalog.EffortTier) Timeframe {
	switch e {
	case catalog.EffortSmall:
		return TimeframeQuickWin
	case catalog.EffortLarge:
		return TimeframeStrategic
	default:
		return TimeframeMidTerm
	}
}

// Initiative is one ranked improvement item on a roadmap.
type Initiative struct {
	ID           string              `json:"id"`
	RoadmapID    string              `json:"roadmap_id"`
	TemplateID   string              `json:"template_id"`
	Dimension    dimension.Dimension `json:"dimension"`
	CurrentLevel int                 `json:"current_level"`
	TargetLevel  int                 `json:"target_level"`
	Priority     float64             `json:"priority"`
	Rank         int                 `json:"rank"`
	Effort       catalog.EffortTier  `json:"effort"`
	Timeframe    Timeframe           `json:"timeframe"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
}

// Roadmap is an ordered set of initiatives generated from one completed
// assessment. Regeneration creates a new roadmap row; it never mutates an
// existing one.
type Roadmap struct {
	ID             string       `json:"id"`
	TenantID       string       `json:"tenant_id"`
	AssessmentID   string       `json:"assessment_id"`
	Status         Status       `json:"status"`
	CatalogVersion string       `json:"catalog_version"`
	Initiatives    []Initiative `json:"initiatives"`
	Version        int          `json:"version"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	PublishedAt    *time.Time   `json:"published_at,omitempty"`
}

// Published reports whether the roadmap has been published (and is therefore
// immutable).
func (r *Roadmap) Published() bool {
	return r.Status == StatusPublished
}
