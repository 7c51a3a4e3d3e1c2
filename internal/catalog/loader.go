package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return parse(defaultYAML, "embedded default")
}

// Load reads a catalog document from path, falling back to the embedded
// default when path is empty. The returned catalog is validated and indexed.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parse(raw, path)
}

func parse(raw []byte, source string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", source, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}
	return &c, nil
}
