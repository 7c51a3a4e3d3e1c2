// Package benchmark contains industry peer benchmarks and the percentile
// comparator.
package benchmark

import (
	"time"

	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// DimensionOverall keys the benchmark that covers the composite score rather
// than a single dimension.
const DimensionOverall = "overall"

// MinReliablePeers is the sample size below which a percentile is
// statistically weak. The comparator still returns the value; flagging low
// confidence is the caller's presentation concern.
const MinReliablePeers = 5

// Benchmark holds the ordered peer score distribution for one
// (industry, dimension) segment. Refreshed out-of-band; read-only here.
type Benchmark struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id,omitempty"`
	Industry   string    `json:"industry"`
	Dimension  string    `json:"dimension"` // one of the five dimensions or "overall"
	Period     string    `json:"period"`    // e.g. 2026-Q2
	PeerScores []float64 `json:"peer_scores"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SampleSize returns the peer count behind the distribution.
func (b *Benchmark) SampleSize() int {
	return len(b.PeerScores)
}

// Comparison is the result of ranking one score against a peer distribution.
type Comparison struct {
	Industry   string  `json:"industry"`
	Dimension  string  `json:"dimension"`
	Period     string  `json:"period"`
	Score      float64 `json:"score"`
	Percentile float64 `json:"percentile"`
	PeerCount  int     `json:"peer_count"`
	PeerMedian float64 `json:"peer_median"`
	Gap        float64 `json:"gap"` // score minus peer median
}

// UpsertRequest is the out-of-band admin input for refreshing a benchmark
// segment.
type UpsertRequest struct {
	Industry   string    `json:"industry"`
	Dimension  string    `json:"dimension"`
	Period     string    `json:"period"`
	PeerScores []float64 `json:"peer_scores"`
}

// ValidDimension reports whether d names a benchmark dimension: one of the
// five maturity dimensions or "overall".
func ValidDimension(d string) bool {
	return d == DimensionOverall || dimension.Valid(dimension.Dimension(d))
}
