package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/middleware"
	"github.com/adoptiq/maturity/internal/port/cache"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/port/database"
)

// benchmarkCacheTTL bounds staleness of cached peer distributions. Segments
// are refreshed out-of-band at most a few times per quarter.
const benchmarkCacheTTL = 15 * time.Minute

// BenchmarkService manages peer distributions and percentile comparison.
type BenchmarkService struct {
	store database.Store
	cache cache.Cache
	clock clock.Clock
}

// NewBenchmarkService creates a new BenchmarkService.
func NewBenchmarkService(store database.Store, c cache.Cache, clk clock.Clock) *BenchmarkService {
	return &BenchmarkService{store: store, cache: c, clock: clk}
}

// Upsert refreshes one benchmark segment. The distribution is stored sorted.
func (s *BenchmarkService) Upsert(ctx context.Context, req *benchmark.UpsertRequest) (*benchmark.Benchmark, error) {
	if err := benchmark.ValidateUpsert(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	b := &benchmark.Benchmark{
		ID:         uuid.NewString(),
		Industry:   req.Industry,
		Dimension:  req.Dimension,
		Period:     req.Period,
		PeerScores: benchmark.NormalizeScores(req.PeerScores),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.UpsertBenchmark(ctx, b); err != nil {
		return nil, fmt.Errorf("upsert benchmark: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, segmentCacheKey(b.Industry, b.Dimension)); err != nil {
			slog.Warn("invalidate benchmark cache", "industry", b.Industry, "dimension", b.Dimension, "error", err)
		}
	}
	return b, nil
}

// Get returns the benchmark for a segment, most recent period when period is
// empty.
func (s *BenchmarkService) Get(ctx context.Context, industry, dim, period string) (*benchmark.Benchmark, error) {
	if !benchmark.ValidDimension(dim) {
		return nil, fmt.Errorf("invalid benchmark dimension %q: %w", dim, domain.ErrValidation)
	}
	if period != "" {
		return s.store.GetBenchmark(ctx, industry, dim, period)
	}
	return s.latest(ctx, industry, dim)
}

// Compare ranks a completed assessment against its industry peers: one
// comparison per dimension plus the overall score, each against the latest
// period for that segment. Segments with no benchmark data are skipped; if no
// segment has data at all the call fails with ErrNotFound.
func (s *BenchmarkService) Compare(ctx context.Context, assessmentID string) ([]benchmark.Comparison, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	a, err := s.store.GetAssessment(ctx, tenantID, assessmentID)
	if err != nil {
		return nil, err
	}
	if !a.Completed() {
		return nil, fmt.Errorf("assessment %s is not completed: %w", assessmentID, domain.ErrState)
	}

	var out []benchmark.Comparison
	for _, d := range dimension.All {
		cmp, err := s.compareSegment(ctx, a.Industry, string(d), a.Scores[d])
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *cmp)
	}
	if a.OverallScore != nil {
		cmp, err := s.compareSegment(ctx, a.Industry, benchmark.DimensionOverall, *a.OverallScore)
		if err == nil {
			out = append(out, *cmp)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no benchmark data for industry %q: %w", a.Industry, domain.ErrNotFound)
	}
	return out, nil
}

// CompareOverall ranks a completed assessment's overall score only.
func (s *BenchmarkService) CompareOverall(ctx context.Context, assessmentID string) (*benchmark.Comparison, error) {
	tenantID := middleware.TenantIDFromContext(ctx)
	a, err := s.store.GetAssessment(ctx, tenantID, assessmentID)
	if err != nil {
		return nil, err
	}
	if !a.Completed() || a.OverallScore == nil {
		return nil, fmt.Errorf("assessment %s is not completed: %w", assessmentID, domain.ErrState)
	}
	return s.compareSegment(ctx, a.Industry, benchmark.DimensionOverall, *a.OverallScore)
}

func (s *BenchmarkService) compareSegment(ctx context.Context, industry, dim string, score float64) (*benchmark.Comparison, error) {
	b, err := s.latest(ctx, industry, dim)
	if err != nil {
		return nil, err
	}
	return b.Compare(score)
}

// latest loads the most recent benchmark for a segment, via cache when
// available. A cache failure falls through to the store.
func (s *BenchmarkService) latest(ctx context.Context, industry, dim string) (*benchmark.Benchmark, error) {
	key := segmentCacheKey(industry, dim)
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var b benchmark.Benchmark
			if err := json.Unmarshal(data, &b); err == nil {
				return &b, nil
			}
		}
	}

	b, err := s.store.LatestBenchmark(ctx, industry, dim)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(b); err == nil {
			if err := s.cache.Set(ctx, key, data, benchmarkCacheTTL); err != nil {
				slog.Warn("cache benchmark", "industry", industry, "dimension", dim, "error", err)
			}
		}
	}
	return b, nil
}

func segmentCacheKey(industry, dim string) string {
	return "benchmark:" + industry + ":" + dim
}
