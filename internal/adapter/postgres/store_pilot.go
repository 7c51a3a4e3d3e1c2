package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/pilot"
)

const pilotColumns = `id, tenant_id, assessment_id, roadmap_id, name, status,
	success_criteria, failure_modes, stakeholders, at_risk, version,
	created_at, updated_at, started_at, completed_at`

func (s *Store) CreatePilot(ctx context.Context, p *pilot.Pilot) error {
	criteria, err := marshalJSONB(p.SuccessCriteria, "[]")
	if err != nil {
		return err
	}
	modes, err := marshalJSONB(p.FailureModes, "[]")
	if err != nil {
		return err
	}
	stakeholders, err := marshalJSONB(p.Stakeholders, "{}")
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO pilots (id, tenant_id, assessment_id, roadmap_id, name, status,
		                     success_criteria, failure_modes, stakeholders, at_risk,
		                     version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.TenantID, p.AssessmentID, nullIfEmpty(p.RoadmapID), p.Name, string(p.Status),
		criteria, modes, stakeholders, p.AtRisk, p.Version, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create pilot: %w", err)
	}
	return nil
}

func (s *Store) GetPilot(ctx context.Context, tenantID, id string) (*pilot.Pilot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pilotColumns+` FROM pilots WHERE id = $1 AND tenant_id = $2`,
		id, tenantID)

	p, err := scanPilot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get pilot %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get pilot %s: %w", id, err)
	}

	if p.ExecutionLog, err = s.listLogEntries(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPilots(ctx context.Context, tenantID, assessmentID string) ([]pilot.Pilot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pilotColumns+` FROM pilots
		 WHERE tenant_id = $1 AND assessment_id = $2
		 ORDER BY created_at DESC`,
		tenantID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list pilots: %w", err)
	}
	defer rows.Close()

	var out []pilot.Pilot
	for rows.Next() {
		p, err := scanPilot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].ExecutionLog, err = s.listLogEntries(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdatePilot writes lifecycle state, the at-risk flag, and any new
// execution-log entries in one CAS-guarded transaction. Appends and
// transitions against the same observed version serialize here.
func (s *Store) UpdatePilot(ctx context.Context, p *pilot.Pilot, expectedVersion int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update pilot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE pilots
		 SET status = $1, at_risk = $2, version = version + 1,
		     updated_at = $3, started_at = $4, completed_at = $5
		 WHERE id = $6 AND tenant_id = $7 AND version = $8`,
		string(p.Status), p.AtRisk, p.UpdatedAt,
		nullTime(p.StartedAt), nullTime(p.CompletedAt),
		p.ID, p.TenantID, expectedVersion)
	if err != nil {
		return fmt.Errorf("update pilot %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update pilot %s: %w", p.ID, domain.ErrConflict)
	}

	for _, e := range p.ExecutionLog {
		metrics, err := marshalJSONB(e.Metrics, "{}")
		if err != nil {
			return err
		}
		// Existing weeks are untouched: the log is append-only.
		_, err = tx.Exec(ctx,
			`INSERT INTO pilot_log_entries (id, pilot_id, week, status, metrics, blockers, notes, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (pilot_id, week) DO NOTHING`,
			e.ID, p.ID, e.Week, string(e.Status), metrics, pgTextArray(e.Blockers), e.Notes, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert log entry week %d: %w", e.Week, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	p.Version = expectedVersion + 1
	return nil
}

func (s *Store) listLogEntries(ctx context.Context, pilotID string) ([]pilot.ExecutionLogEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, pilot_id, week, status, metrics, blockers, notes, created_at
		 FROM pilot_log_entries WHERE pilot_id = $1 ORDER BY week`,
		pilotID)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	var out []pilot.ExecutionLogEntry
	for rows.Next() {
		var (
			e       pilot.ExecutionLogEntry
			status  string
			metrics []byte
		)
		if err := rows.Scan(&e.ID, &e.PilotID, &e.Week, &status, &metrics, &e.Blockers, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		e.Status = pilot.EntryStatus(status)
		if len(metrics) > 0 {
			if err := json.Unmarshal(metrics, &e.Metrics); err != nil {
				return nil, fmt.Errorf("unmarshal log metrics: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanPilot(row scannable) (*pilot.Pilot, error) {
	var (
		p                          pilot.Pilot
		roadmapID                  *string
		status                     string
		criteria, modes, stakeJSON []byte
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.AssessmentID, &roadmapID, &p.Name, &status,
		&criteria, &modes, &stakeJSON, &p.AtRisk, &p.Version,
		&p.CreatedAt, &p.UpdatedAt, &p.StartedAt, &p.CompletedAt)
	if err != nil {
		return nil, err
	}
	if roadmapID != nil {
		p.RoadmapID = *roadmapID
	}
	p.Status = pilot.Status(status)
	if err := json.Unmarshal(criteria, &p.SuccessCriteria); err != nil {
		return nil, fmt.Errorf("unmarshal success criteria: %w", err)
	}
	if err := json.Unmarshal(modes, &p.FailureModes); err != nil {
		return nil, fmt.Errorf("unmarshal failure modes: %w", err)
	}
	if err := json.Unmarshal(stakeJSON, &p.Stakeholders); err != nil {
		return nil, fmt.Errorf("unmarshal stakeholders: %w", err)
	}
	return &p, nil
}
