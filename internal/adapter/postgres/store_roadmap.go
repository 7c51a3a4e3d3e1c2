package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
)

const roadmapColumns = `id, tenant_id, assessment_id, status, catalog_version,
	version, created_at, updated_at, published_at`

// CreateRoadmap inserts a roadmap and its initiatives in one transaction.
func (s *Store) CreateRoadmap(ctx context.Context, r *roadmap.Roadmap) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create roadmap: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO roadmaps (id, tenant_id, assessment_id, status, catalog_version, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.TenantID, r.AssessmentID, string(r.Status), r.CatalogVersion,
		r.Version, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create roadmap: %w", err)
	}

	for _, init := range r.Initiatives {
		_, err := tx.Exec(ctx,
			`INSERT INTO initiatives (id, roadmap_id, template_id, dimension, current_level,
			                          target_level, priority, rank, effort, timeframe, title, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			init.ID, r.ID, init.TemplateID, string(init.Dimension), init.CurrentLevel,
			init.TargetLevel, init.Priority, init.Rank, string(init.Effort),
			string(init.Timeframe), init.Title, init.Description)
		if err != nil {
			return fmt.Errorf("create initiative %s: %w", init.TemplateID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) GetRoadmap(ctx context.Context, tenantID, id string) (*roadmap.Roadmap, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE id = $1 AND tenant_id = $2`,
		id, tenantID)

	r, err := scanRoadmap(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get roadmap %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get roadmap %s: %w", id, err)
	}

	if r.Initiatives, err = s.listInitiatives(ctx, id); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) ListRoadmaps(ctx context.Context, tenantID, assessmentID string) ([]roadmap.Roadmap, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps
		 WHERE tenant_id = $1 AND assessment_id = $2
		 ORDER BY created_at DESC`,
		tenantID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	defer rows.Close()

	var out []roadmap.Roadmap
	for rows.Next() {
		r, err := scanRoadmap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Initiatives, err = s.listInitiatives(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateRoadmapStatus applies a CAS-guarded status change. Publishing stamps
// published_at.
func (s *Store) UpdateRoadmapStatus(ctx context.Context, tenantID, id string, status roadmap.Status, expectedVersion int) (*roadmap.Roadmap, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE roadmaps
		 SET status = $1, version = version + 1, updated_at = now(),
		     published_at = CASE WHEN $1 = 'published' THEN now() ELSE published_at END
		 WHERE id = $2 AND tenant_id = $3 AND version = $4`,
		string(status), id, tenantID, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update roadmap %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("update roadmap %s: %w", id, domain.ErrConflict)
	}
	return s.GetRoadmap(ctx, tenantID, id)
}

func (s *Store) SupersedePublished(ctx context.Context, tenantID, assessmentID, exceptID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE roadmaps
		 SET status = 'superseded', version = version + 1, updated_at = now()
		 WHERE tenant_id = $1 AND assessment_id = $2 AND id <> $3 AND status = 'published'`,
		tenantID, assessmentID, exceptID)
	if err != nil {
		return fmt.Errorf("supersede roadmaps for %s: %w", assessmentID, err)
	}
	return nil
}

func (s *Store) listInitiatives(ctx context.Context, roadmapID string) ([]roadmap.Initiative, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, roadmap_id, template_id, dimension, current_level, target_level,
		        priority, rank, effort, timeframe, title, description
		 FROM initiatives WHERE roadmap_id = $1 ORDER BY rank`,
		roadmapID)
	if err != nil {
		return nil, fmt.Errorf("list initiatives: %w", err)
	}
	defer rows.Close()

	var out []roadmap.Initiative
	for rows.Next() {
		var (
			init                 roadmap.Initiative
			dim, effort, horizon string
		)
		err := rows.Scan(&init.ID, &init.RoadmapID, &init.TemplateID, &dim, &init.CurrentLevel,
			&init.TargetLevel, &init.Priority, &init.Rank, &effort, &horizon,
			&init.Title, &init.Description)
		if err != nil {
			return nil, fmt.Errorf("scan initiative: %w", err)
		}
		init.Dimension = dimension.Dimension(dim)
		init.Effort = catalog.EffortTier(effort)
		init.Timeframe = roadmap.Timeframe(horizon)
		out = append(out, init)
	}
	return out, rows.Err()
}

func scanRoadmap(row scannable) (*roadmap.Roadmap, error) {
	var (
		r      roadmap.Roadmap
		status string
	)
	err := row.Scan(&r.ID, &r.TenantID, &r.AssessmentID, &status, &r.CatalogVersion,
		&r.Version, &r.CreatedAt, &r.UpdatedAt, &r.PublishedAt)
	if err != nil {
		return nil, err
	}
	r.Status = roadmap.Status(status)
	return &r, nil
}
