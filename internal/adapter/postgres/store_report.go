package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/report"
)

// Reports are stored as their full JSON document plus the columns needed for
// lookup. The document is the artifact consumers receive; re-deriving it from
// relational state would defeat its point-in-time nature.

func (s *Store) CreateReport(ctx context.Context, r *report.Report) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO reports (id, tenant_id, assessment_id, doc, generated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.TenantID, r.AssessmentID, doc, r.GeneratedAt)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (s *Store) GetReport(ctx context.Context, tenantID, id string) (*report.Report, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM reports WHERE id = $1 AND tenant_id = $2`,
		id, tenantID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get report %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}

	var r report.Report
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", id, err)
	}
	return &r, nil
}

func (s *Store) ListReports(ctx context.Context, tenantID, assessmentID string) ([]report.Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM reports
		 WHERE tenant_id = $1 AND assessment_id = $2
		 ORDER BY generated_at DESC`,
		tenantID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []report.Report
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var r report.Report
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
