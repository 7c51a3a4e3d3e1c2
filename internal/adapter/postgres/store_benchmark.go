package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
)

// Benchmarks are shared reference data: they carry no tenant column and are
// readable across tenants (the percentile lookup is the one sanctioned
// cross-tenant read).

const benchmarkColumns = `id, industry, dimension, period, peer_scores, created_at, updated_at`

// UpsertBenchmark inserts or refreshes one (industry, dimension, period)
// segment.
func (s *Store) UpsertBenchmark(ctx context.Context, b *benchmark.Benchmark) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO benchmarks (id, industry, dimension, period, peer_scores, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (industry, dimension, period)
		 DO UPDATE SET peer_scores = EXCLUDED.peer_scores, updated_at = EXCLUDED.updated_at`,
		b.ID, b.Industry, b.Dimension, b.Period, b.PeerScores, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert benchmark %s/%s: %w", b.Industry, b.Dimension, err)
	}
	return nil
}

func (s *Store) GetBenchmark(ctx context.Context, industry, dim, period string) (*benchmark.Benchmark, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+benchmarkColumns+` FROM benchmarks
		 WHERE industry = $1 AND dimension = $2 AND period = $3`,
		industry, dim, period)

	b, err := scanBenchmark(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("benchmark %s/%s/%s: %w", industry, dim, period, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get benchmark %s/%s/%s: %w", industry, dim, period, err)
	}
	return b, nil
}

// LatestBenchmark resolves the most recent period for a segment. Periods are
// labels like 2026-Q2, so lexical order is chronological order.
func (s *Store) LatestBenchmark(ctx context.Context, industry, dim string) (*benchmark.Benchmark, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+benchmarkColumns+` FROM benchmarks
		 WHERE industry = $1 AND dimension = $2
		 ORDER BY period DESC LIMIT 1`,
		industry, dim)

	b, err := scanBenchmark(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("benchmark %s/%s: %w", industry, dim, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("latest benchmark %s/%s: %w", industry, dim, err)
	}
	return b, nil
}

func scanBenchmark(row scannable) (*benchmark.Benchmark, error) {
	var b benchmark.Benchmark
	err := row.Scan(&b.ID, &b.Industry, &b.Dimension, &b.Period, &b.PeerScores,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
