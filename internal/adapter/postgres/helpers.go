package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// nullIfEmpty returns nil for empty strings (for nullable UUID columns).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullTime converts a zero time to nil for nullable DB columns.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// pgTextArray converts a string slice to a pgx-compatible text array.
// nil slices become empty arrays to avoid SQL NULL.
func pgTextArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// marshalJSONB serializes v for a JSONB column, mapping nil to the given
// empty literal so the column never holds SQL NULL.
func marshalJSONB(v any, empty string) ([]byte, error) {
	if v == nil {
		return []byte(empty), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return data, nil
}

// dimensionMapJSON serializes a per-dimension score or weight map.
func dimensionMapJSON(m map[dimension.Dimension]float64) ([]byte, error) {
	return marshalJSONB(m, "{}")
}

// scanDimensionMap deserializes a per-dimension score or weight map. NULL
// columns come back as a nil map.
func scanDimensionMap(data []byte) (map[dimension.Dimension]float64, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var m map[dimension.Dimension]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal dimension map: %w", err)
	}
	return m, nil
}
