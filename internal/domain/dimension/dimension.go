// Package dimension defines the five fixed maturity dimensions and the
// weighted-aggregation primitives shared by scoring and roadmap priority.
package dimension

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
)

// Dimension is one of the five fixed maturity categories.
type Dimension string

const (
	Data       Dimension = "data"
	Process    Dimension = "process"
	People     Dimension = "people"
	Technology Dimension = "technology"
	Governance Dimension = "governance"
)

// All lists the dimensions in their fixed declaration order. The order is
// load-bearing: it is the deterministic tie-break for roadmap priority.
var All = []Dimension{Data, Process, People, Technology, Governance}

// weightSumTolerance absorbs float rounding when validating a weight table.
const weightSumTolerance = 0.001

// Valid reports whether d is one of the five known dimensions.
func Valid(d Dimension) bool {
	switch d {
	case Data, Process, People, Technology, Governance:
		return true
	default:
		return false
	}
}

// Order returns the declaration-order index of d, or -1 for an unknown value.
func Order(d Dimension) int {
	for i, known := range All {
		if known == d {
			return i
		}
	}
	return -1
}

// Weights maps each dimension to its share of the overall score.
type Weights map[Dimension]float64

// DefaultWeights returns the standard dimension-weight table.
func DefaultWeights() Weights {
	return Weights{
		Data:       0.25,
		Process:    0.20,
		People:     0.20,
		Technology: 0.20,
		Governance: 0.15,
	}
}

// Validate checks that the table covers all five dimensions with non-negative
// weights summing to 1.0.
func (w Weights) Validate() error {
	var sum float64
	for _, d := range All {
		weight, ok := w[d]
		if !ok {
			return fmt.Errorf("weight for dimension %q is missing: %w", d, domain.ErrValidation)
		}
		if weight < 0 {
			return fmt.Errorf("weight for dimension %q is negative: %w", d, domain.ErrValidation)
		}
		sum += weight
	}
	for d := range w {
		if !Valid(d) {
			return fmt.Errorf("unknown dimension %q in weight table: %w", d, domain.ErrValidation)
		}
	}
	if diff := sum - 1.0; diff > weightSumTolerance || diff < -weightSumTolerance {
		return fmt.Errorf("dimension weights must sum to 1.0, got %.3f: %w", sum, domain.ErrValidation)
	}
	return nil
}
