// Package maturity maps 0-100 scores onto the five-level maturity scale.
package maturity

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
)

// Band is one row of the maturity classification table. Min is inclusive and
// Max exclusive, except for the top band which includes its Max so that a
// perfect 100 classifies as level 5.
type Band struct {
	Level int     `json:"level" yaml:"level"`
	Label string  `json:"label" yaml:"label"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// Bands is an ordered classification table covering [0,100].
type Bands []Band

// DefaultBands returns the standard five-band table.
func DefaultBands() Bands {
	return Bands{
		{Level: 1, Label: "Initial", Min: 0, Max: 20},
		{Level: 2, Label: "Developing", Min: 20, Max: 40},
		{Level: 3, Label: "Defined", Min: 40, Max: 60},
		{Level: 4, Label: "Managed", Min: 60, Max: 80},
		{Level: 5, Label: "Optimizing", Min: 80, Max: 100},
	}
}

// Validate checks that the table is non-empty, contiguous, starts at 0,
// ends at 100, and carries strictly increasing levels.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("maturity band table is empty: %w", domain.ErrValidation)
	}
	if b[0].Min != 0 {
		return fmt.Errorf("maturity bands must start at 0, got %.1f: %w", b[0].Min, domain.ErrValidation)
	}
	if b[len(b)-1].Max != 100 {
		return fmt.Errorf("maturity bands must end at 100, got %.1f: %w", b[len(b)-1].Max, domain.ErrValidation)
	}
	for i, band := range b {
		if band.Min >= band.Max {
			return fmt.Errorf("maturity band %d has min %.1f >= max %.1f: %w",
				band.Level, band.Min, band.Max, domain.ErrValidation)
		}
		if band.Label == "" {
			return fmt.Errorf("maturity band %d has no label: %w", band.Level, domain.ErrValidation)
		}
		if i > 0 {
			if band.Min != b[i-1].Max {
				return fmt.Errorf("maturity bands %d and %d are not contiguous: %w",
					b[i-1].Level, band.Level, domain.ErrValidation)
			}
			if band.Level <= b[i-1].Level {
				return fmt.Errorf("maturity band levels must increase, got %d after %d: %w",
					band.Level, b[i-1].Level, domain.ErrValidation)
			}
		}
	}
	return nil
}

// Classify maps a 0-100 score to its maturity level and label. The score
// range is checked defensively even though upstream scoring guarantees it.
func (b Bands) Classify(score float64) (int, string, error) {
	if score < 0 || score > 100 {
		return 0, "", fmt.Errorf("score %.2f outside [0,100]: %w", score, domain.ErrValidation)
	}
	for i, band := range b {
		top := i == len(b)-1
		if score >= band.Min && (score < band.Max || (top && score <= band.Max)) {
			return band.Level, band.Label, nil
		}
	}
	// Unreachable for a validated table.
	return 0, "", fmt.Errorf("score %.2f not covered by band table: %w", score, domain.ErrValidation)
}

// MaxLevel returns the highest level in the table.
func (b Bands) MaxLevel() int {
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1].Level
}
