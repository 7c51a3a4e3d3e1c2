package benchmark

import (
	"fmt"
	"sort"

	"github.com/adoptiq/maturity/internal/domain"
)

// Percentile ranks score against the peer distribution using the midpoint
// rule: (count below + 0.5 × count equal) / total × 100. The midpoint term
// makes ranking deterministic when the score equals existing peer
// observations, which keeps the result reproducible for testing.
func Percentile(peers []float64, score float64) (float64, error) {
	if len(peers) == 0 {
		return 0, fmt.Errorf("empty peer distribution: %w", domain.ErrValidation)
	}

	var below, equal int
	for _, peer := range peers {
		switch {
		case peer < score:
			below++
		case peer == score:
			equal++
		}
	}
	return (float64(below) + 0.5*float64(equal)) / float64(len(peers)) * 100, nil
}

// Compare ranks score against the benchmark's distribution and fills in the
// median gap summary.
func (b *Benchmark) Compare(score float64) (*Comparison, error) {
	pct, err := Percentile(b.PeerScores, score)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s/%s: %w", b.Industry, b.Dimension, err)
	}
	median := median(b.PeerScores)
	return &Comparison{
		Industry:   b.Industry,
		Dimension:  b.Dimension,
		Period:     b.Period,
		Score:      score,
		Percentile: pct,
		PeerCount:  len(b.PeerScores),
		PeerMedian: median,
		Gap:        score - median,
	}, nil
}

// ValidateUpsert validates an out-of-band benchmark refresh.
func ValidateUpsert(req *UpsertRequest) error {
	if req.Industry == "" {
		return fmt.Errorf("industry is required: %w", domain.ErrValidation)
	}
	if !ValidDimension(req.Dimension) {
		return fmt.Errorf("invalid benchmark dimension %q: %w", req.Dimension, domain.ErrValidation)
	}
	if req.Period == "" {
		return fmt.Errorf("period is required: %w", domain.ErrValidation)
	}
	if len(req.PeerScores) == 0 {
		return fmt.Errorf("peer_scores are required: %w", domain.ErrValidation)
	}
	for _, s := range req.PeerScores {
		if s < 0 || s > 100 {
			return fmt.Errorf("peer score %.2f outside [0,100]: %w", s, domain.ErrValidation)
		}
	}
	return nil
}

// NormalizeScores returns a sorted copy of the distribution. Stored
// distributions are kept ordered so repeated comparisons and dumps are
// deterministic.
func NormalizeScores(scores []float64) []float64 {
	out := make([]float64, len(scores))
	copy(out, scores)
	sort.Float64s(out)
	return out
}

// median assumes the distribution is sorted.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
