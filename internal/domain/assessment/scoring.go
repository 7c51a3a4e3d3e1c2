package assessment

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// ScoreResult is the output of the dimension scorer: one 0-100 score per
// dimension plus the weighted overall score.
type ScoreResult struct {
	Dimensions map[dimension.Dimension]float64 `json:"dimension_scores"`
	Overall    float64                         `json:"overall_score"`
}

// ComputeScores aggregates the responses of one assessment into per-dimension
// scores and a weighted overall score. It is a pure function: persistence and
// the status transition to completed belong to the caller.
//
// Within a dimension, responses combine via a weighted mean over their
// intra-dimension weights; responses with no weight get equal weight. The
// overall score is the weighted sum of the dimension scores using the
// dimension-weight table, which must cover all five dimensions and sum to 1.
func ComputeScores(responses []Response, weights dimension.Weights) (*ScoreResult, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("no responses to score: %w", domain.ErrValidation)
	}

	byDimension := make(map[dimension.Dimension][]Response, len(dimension.All))
	for _, r := range responses {
		if !dimension.Valid(r.Dimension) {
			return nil, fmt.Errorf("response %s has unknown dimension %q: %w",
				r.QuestionID, r.Dimension, domain.ErrValidation)
		}
		if r.Value < 0 || r.Value > 100 {
			return nil, fmt.Errorf("response %s value %.2f outside [0,100]: %w",
				r.QuestionID, r.Value, domain.ErrValidation)
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("response %s has negative weight: %w",
				r.QuestionID, domain.ErrValidation)
		}
		byDimension[r.Dimension] = append(byDimension[r.Dimension], r)
	}

	for _, d := range dimension.All {
		if len(byDimension[d]) == 0 {
			return nil, fmt.Errorf("no responses for dimension %q (all five dimensions are required): %w",
				d, domain.ErrValidation)
		}
	}

	result := &ScoreResult{Dimensions: make(map[dimension.Dimension]float64, len(dimension.All))}

	var overall []dimension.Weighted
	for _, d := range dimension.All {
		score, err := aggregateDimension(byDimension[d])
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", d, err)
		}
		result.Dimensions[d] = score
		overall = append(overall, dimension.Weighted{Value: score, Weight: weights[d]})
	}

	// Weights are validated to sum to 1, so no renormalization here.
	total, err := dimension.Average(overall, false)
	if err != nil {
		return nil, err
	}
	result.Overall = total

	return result, nil
}

// aggregateDimension computes the weighted mean of one dimension's responses.
// When every response left its weight unspecified the mean is unweighted.
func aggregateDimension(responses []Response) (float64, error) {
	items := make([]dimension.Weighted, 0, len(responses))
	for _, r := range responses {
		w := r.Weight
		if w == 0 {
			w = 1
		}
		items = append(items, dimension.Weighted{Value: r.Value, Weight: w})
	}
	return dimension.Average(items, true)
}
