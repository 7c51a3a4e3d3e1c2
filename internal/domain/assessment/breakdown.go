package assessment

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// DimensionBreakdown is one dimension's slice of a completed assessment's
// score, with the responses that produced it.
type DimensionBreakdown struct {
	Dimension    dimension.Dimension `json:"dimension"`
	Score        float64             `json:"score"`
	Weight       float64             `json:"weight"`
	Contribution float64             `json:"contribution"`
	Responses    []Response          `json:"responses"`
}

// Breakdown is the read-only score projection of a completed assessment.
type Breakdown struct {
	AssessmentID  string               `json:"assessment_id"`
	OverallScore  float64              `json:"overall_score"`
	MaturityLevel int                  `json:"maturity_level"`
	MaturityLabel string               `json:"maturity_label"`
	Dimensions    []DimensionBreakdown `json:"dimensions"`
}

// BuildBreakdown projects a completed assessment's sealed scores and weight
// table onto its responses, in canonical dimension order. Contribution is the
// dimension's share of the overall score.
func BuildBreakdown(a *Assessment, responses []Response, weights dimension.Weights) (*Breakdown, error) {
	if !a.Completed() {
		return nil, fmt.Errorf("assessment %s is not completed: %w", a.ID, domain.ErrState)
	}

	byDimension := make(map[dimension.Dimension][]Response, len(dimension.All))
	for _, r := range responses {
		byDimension[r.Dimension] = append(byDimension[r.Dimension], r)
	}

	b := &Breakdown{
		AssessmentID:  a.ID,
		MaturityLabel: a.MaturityLabel,
		Dimensions:    make([]DimensionBreakdown, 0, len(dimension.All)),
	}
	if a.OverallScore != nil {
		b.OverallScore = *a.OverallScore
	}
	if a.MaturityLevel != nil {
		b.MaturityLevel = *a.MaturityLevel
	}

	for _, d := range dimension.All {
		score := a.Scores[d]
		weight := weights[d]
		b.Dimensions = append(b.Dimensions, DimensionBreakdown{
			Dimension:    d,
			Score:        score,
			Weight:       weight,
			Contribution: score * weight,
			Responses:    byDimension[d],
		})
	}
	return b, nil
}
