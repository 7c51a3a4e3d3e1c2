package catalog

import (
	"errors"
	"testing"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if c.Version == "" {
		t.Error("default catalog has no version")
	}
	if err := c.DimensionWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	// Every (dimension, level 1..4) pair must have at least one template so
	// roadmap generation never comes up empty.
	for _, d := range dimension.All {
		for level := 1; level < c.Bands.MaxLevel(); level++ {
			if len(c.TemplatesFor(d, level)) == 0 {
				t.Errorf("no template for %s level %d", d, level)
			}
		}
	}
}

func TestTemplatesForReturnsMatchingKey(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	for _, tmpl := range c.TemplatesFor(dimension.Data, 2) {
		if tmpl.Dimension != dimension.Data || tmpl.FromLevel != 2 {
			t.Errorf("TemplatesFor(data, 2) returned %s (%s, from %d)",
				tmpl.ID, tmpl.Dimension, tmpl.FromLevel)
		}
	}
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	base := func() *Catalog {
		c, err := Default()
		if err != nil {
			t.Fatalf("Default() error: %v", err)
		}
		return c
	}

	tests := []struct {
		name  string
		corrupt func(*Catalog)
	}{
		{"missing version", func(c *Catalog) { c.Version = "" }},
		{"weights not summing to one", func(c *Catalog) { c.Weights["data"] = 0.5 }},
		{"unknown template dimension", func(c *Catalog) { c.Templates[0].Dimension = "culture" }},
		{"from_level at top band", func(c *Catalog) { c.Templates[0].FromLevel = 5 }},
		{"unknown effort", func(c *Catalog) { c.Templates[0].Effort = "gigantic" }},
		{"duplicate template id", func(c *Catalog) { c.Templates[1].ID = c.Templates[0].ID }},
		{"coverage gap", func(c *Catalog) { c.Templates = c.Templates[1:] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.corrupt(c)
			err := c.Validate()
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Validate() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Error("Load() succeeded for missing file")
	}
}
