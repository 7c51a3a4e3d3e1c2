package roadmap

import (
	"fmt"
	"sort"

	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/domain/maturity"
)

// Generate builds the ranked initiative list for one set of dimension scores.
// It is a pure function: identifiers, persistence, and the roadmap envelope
// belong to the caller.
//
// For each dimension below the top maturity level, the templates registered
// for advancing one level up are selected and given
// priority = (maxLevel - currentLevel) × dimensionWeight, so larger gaps in
// heavier dimensions rank first. Ordering is by descending priority, ties
// broken by the fixed dimension declaration order, then by catalog order
// within a dimension. Dimensions already at the top level contribute nothing.
func Generate(scores map[dimension.Dimension]float64, weights dimension.Weights, bands maturity.Bands, cat *catalog.Catalog) ([]Initiative, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	maxLevel := bands.MaxLevel()

	var out []Initiative
	for _, d := range dimension.All {
		score, ok := scores[d]
		if !ok {
			return nil, fmt.Errorf("no score for dimension %q: %w", d, domain.ErrValidation)
		}
		level, _, err := bands.Classify(score)
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", d, err)
		}
		if level >= maxLevel {
			continue
		}

		// Single-step progression only; the generator never skips a level.
		gap := dimension.Weighted{Value: float64(maxLevel - level), Weight: weights[d]}
		for _, tmpl := range cat.TemplatesFor(d, level) {
			out = append(out, Initiative{
				TemplateID:   tmpl.ID,
				Dimension:    d,
				CurrentLevel: level,
				TargetLevel:  level + 1,
				Priority:     gap.Score(),
				Effort:       tmpl.Effort,
				Timeframe:    TimeframeForEffort(tmpl.Effort),
				Title:        tmpl.Title,
				Description:  tmpl.Description,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return dimension.Order(out[i].Dimension) < dimension.Order(out[j].Dimension)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
