package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Assessments ---

const assessmentColumns = `id, tenant_id, organization_name, industry, organization_size,
	status, weights, scores, overall_score, maturity_level, maturity_label,
	version, created_at, updated_at, completed_at`

func (s *Store) CreateAssessment(ctx context.Context, a *assessment.Assessment) error {
	weights, err := dimensionMapJSON(a.Weights)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, tenant_id, organization_name, industry, organization_size,
		                          status, weights, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.TenantID, a.OrganizationName, a.Industry, a.OrganizationSize,
		string(a.Status), weights, a.Version, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

func (s *Store) GetAssessment(ctx context.Context, tenantID, id string) (*assessment.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1 AND tenant_id = $2`,
		id, tenantID)

	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get assessment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return a, nil
}

func (s *Store) ListAssessments(ctx context.Context, tenantID string, filter assessment.ListFilter) ([]assessment.Assessment, error) {
	q := `SELECT ` + assessmentColumns + ` FROM assessments WHERE tenant_id = $1`
	args := []any{tenantID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Industry != "" {
		args = append(args, filter.Industry)
		q += fmt.Sprintf(" AND industry = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []assessment.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// InsertResponses appends a response batch inside one transaction. The CAS on
// the assessment version serializes competing submissions; the same UPDATE
// moves a draft assessment to in_progress.
func (s *Store) InsertResponses(ctx context.Context, tenantID, assessmentID string, expectedVersion int, responses []assessment.Response) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert responses: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE assessments SET version = version + 1, updated_at = now(),
		        status = CASE WHEN status = 'draft' THEN 'in_progress' ELSE status END
		 WHERE id = $1 AND tenant_id = $2 AND version = $3 AND status <> 'completed'`,
		assessmentID, tenantID, expectedVersion)
	if err != nil {
		return fmt.Errorf("bump assessment version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert responses for %s: %w", assessmentID, domain.ErrConflict)
	}

	for _, r := range responses {
		_, err := tx.Exec(ctx,
			`INSERT INTO responses (id, assessment_id, question_id, dimension, value, weight, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.ID, assessmentID, r.QuestionID, string(r.Dimension), r.Value, r.Weight, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert response %s: %w", r.QuestionID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) ListResponses(ctx context.Context, tenantID, assessmentID string) ([]assessment.Response, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.assessment_id, r.question_id, r.dimension, r.value, r.weight, r.created_at
		 FROM responses r
		 JOIN assessments a ON a.id = r.assessment_id
		 WHERE r.assessment_id = $1 AND a.tenant_id = $2
		 ORDER BY r.created_at, r.question_id`,
		assessmentID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []assessment.Response
	for rows.Next() {
		var r assessment.Response
		var dim string
		if err := rows.Scan(&r.ID, &r.AssessmentID, &r.QuestionID, &dim, &r.Value, &r.Weight, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r.Dimension = dimension.Dimension(dim)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CompleteAssessment seals the assessment. The CAS covers both the version
// and the not-yet-completed status, so only one racing scorer wins.
func (s *Store) CompleteAssessment(ctx context.Context, a *assessment.Assessment, expectedVersion int) error {
	scores, err := dimensionMapJSON(a.Scores)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE assessments
		 SET status = $1, scores = $2, overall_score = $3, maturity_level = $4,
		     maturity_label = $5, version = version + 1, updated_at = $6, completed_at = $7
		 WHERE id = $8 AND tenant_id = $9 AND version = $10 AND status <> 'completed'`,
		string(a.Status), scores, a.OverallScore, a.MaturityLevel,
		a.MaturityLabel, a.UpdatedAt, nullTime(a.CompletedAt),
		a.ID, a.TenantID, expectedVersion)
	if err != nil {
		return fmt.Errorf("complete assessment %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("complete assessment %s: %w", a.ID, domain.ErrConflict)
	}
	a.Version = expectedVersion + 1
	return nil
}

func scanAssessment(row scannable) (*assessment.Assessment, error) {
	var (
		a       assessment.Assessment
		status  string
		weights []byte
		scores  []byte
	)
	err := row.Scan(&a.ID, &a.TenantID, &a.OrganizationName, &a.Industry, &a.OrganizationSize,
		&status, &weights, &scores, &a.OverallScore, &a.MaturityLevel, &a.MaturityLabel,
		&a.Version, &a.CreatedAt, &a.UpdatedAt, &a.CompletedAt)
	if err != nil {
		return nil, err
	}
	a.Status = assessment.Status(status)
	if a.Weights, err = scanDimensionMap(weights); err != nil {
		return nil, err
	}
	if a.Scores, err = scanDimensionMap(scores); err != nil {
		return nil, err
	}
	return &a, nil
}
