// Package catalog holds the versioned rule tables the decision engine runs
// on: the dimension-weight table, the maturity band table, and the initiative
// template catalog. The tables are data, not code, so rules can change per
// deployment (and eventually per tenant) without a rebuild.
package catalog

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/domain/maturity"
)

// EffortTier buckets an initiative template's implementation effort.
type EffortTier string

const (
	EffortSmall  EffortTier = "small"
	EffortMedium EffortTier = "medium"
	EffortLarge  EffortTier = "large"
)

// ValidEffort reports whether e is a known effort tier.
func ValidEffort(e EffortTier) bool {
	switch e {
	case EffortSmall, EffortMedium, EffortLarge:
		return true
	default:
		return false
	}
}

// Template is one initiative template, keyed by the dimension it advances and
// the maturity level it advances from. The generator only ever proposes
// single-step progressions, so FromLevel fully determines the target level.
type Template struct {
	ID          string              `yaml:"id" json:"id"`
	Dimension   dimension.Dimension `yaml:"dimension" json:"dimension"`
	FromLevel   int                 `yaml:"from_level" json:"from_level"`
	Title       string              `yaml:"title" json:"title"`
	Description string              `yaml:"description" json:"description"`
	Effort      EffortTier          `yaml:"effort" json:"effort"`
}

// Catalog is one versioned rule document.
type Catalog struct {
	Version   string              `yaml:"version" json:"version"`
	Weights   map[string]float64  `yaml:"dimension_weights" json:"dimension_weights"`
	Bands     maturity.Bands      `yaml:"maturity_bands" json:"maturity_bands"`
	Templates []Template          `yaml:"initiative_templates" json:"initiative_templates"`

	byKey map[templateKey][]Template
}

type templateKey struct {
	dim  dimension.Dimension
	from int
}

// DimensionWeights returns the weight table in domain form.
func (c *Catalog) DimensionWeights() dimension.Weights {
	w := make(dimension.Weights, len(c.Weights))
	for name, weight := range c.Weights {
		w[dimension.Dimension(name)] = weight
	}
	return w
}

// TemplatesFor returns the templates registered for advancing dim from the
// given level to the next one up.
func (c *Catalog) TemplatesFor(dim dimension.Dimension, fromLevel int) []Template {
	return c.byKey[templateKey{dim: dim, from: fromLevel}]
}

// Validate checks internal consistency: a valid weight table, a valid band
// table, well-formed templates, and template coverage for every
// (dimension, non-top level) pair so generation never comes up empty.
func (c *Catalog) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("catalog version is required: %w", domain.ErrValidation)
	}
	if err := c.DimensionWeights().Validate(); err != nil {
		return fmt.Errorf("catalog %s weights: %w", c.Version, err)
	}
	if err := c.Bands.Validate(); err != nil {
		return fmt.Errorf("catalog %s bands: %w", c.Version, err)
	}

	maxLevel := c.Bands.MaxLevel()
	seen := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if t.ID == "" || t.Title == "" {
			return fmt.Errorf("template %q needs id and title: %w", t.ID, domain.ErrValidation)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate template id %q: %w", t.ID, domain.ErrValidation)
		}
		seen[t.ID] = true
		if !dimension.Valid(t.Dimension) {
			return fmt.Errorf("template %q has unknown dimension %q: %w", t.ID, t.Dimension, domain.ErrValidation)
		}
		if t.FromLevel < 1 || t.FromLevel >= maxLevel {
			return fmt.Errorf("template %q from_level %d outside [1,%d): %w",
				t.ID, t.FromLevel, maxLevel, domain.ErrValidation)
		}
		if !ValidEffort(t.Effort) {
			return fmt.Errorf("template %q has unknown effort %q: %w", t.ID, t.Effort, domain.ErrValidation)
		}
	}

	c.index()
	for _, d := range dimension.All {
		for level := 1; level < maxLevel; level++ {
			if len(c.TemplatesFor(d, level)) == 0 {
				return fmt.Errorf("no template for dimension %q level %d to %d: %w",
					d, level, level+1, domain.ErrValidation)
			}
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.byKey = make(map[templateKey][]Template, len(c.Templates))
	for _, t := range c.Templates {
		k := templateKey{dim: t.Dimension, from: t.FromLevel}
		c.byKey[k] = append(c.byKey[k], t)
	}
}
