package dimension

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
)

// Weighted pairs a value with its weight. It is the unit of every weighted
// aggregation in the engine: response aggregation within a dimension, the
// overall score across dimensions, and roadmap priority.
type Weighted struct {
	Value  float64
	Weight float64
}

// Score returns the weight-scaled contribution of the pair.
func (w Weighted) Score() float64 {
	return w.Value * w.Weight
}

// Average computes the weighted average of items. When renormalize is true the
// weights are divided by their sum, so any positive weighting works; when
// false the caller guarantees the weights already sum to 1 and the result is
// the plain weighted sum.
func Average(items []Weighted, renormalize bool) (float64, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("weighted average of empty set: %w", domain.ErrValidation)
	}

	var sum, totalWeight float64
	for _, item := range items {
		if item.Weight < 0 {
			return 0, fmt.Errorf("negative weight %.3f: %w", item.Weight, domain.ErrValidation)
		}
		sum += item.Score()
		totalWeight += item.Weight
	}

	if !renormalize {
		return sum, nil
	}
	if totalWeight == 0 {
		return 0, fmt.Errorf("weighted average with zero total weight: %w", domain.ErrValidation)
	}
	return sum / totalWeight, nil
}
