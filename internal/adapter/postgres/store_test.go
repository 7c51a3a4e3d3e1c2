package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adoptiq/maturity/internal/adapter/postgres"
	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/port/database"
)

// Compile-time check that the postgres store satisfies the port.
var _ database.Store = (*postgres.Store)(nil)

// setupStore creates a pgxpool connection, runs all migrations, and returns a
// ready-to-use Store. The pool is closed via t.Cleanup.
func setupStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool)
}

func seedAssessment(t *testing.T, store *postgres.Store, tenantID string) *assessment.Assessment {
	t.Helper()
	now := time.Now().UTC()
	a := &assessment.Assessment{
		ID:               uuid.NewString(),
		TenantID:         tenantID,
		OrganizationName: "Integration Test Org",
		Industry:         "technology",
		OrganizationSize: "smb",
		Status:           assessment.StatusDraft,
		Weights:          dimension.DefaultWeights(),
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := store.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("CreateAssessment: %v", err)
	}
	return a
}

func TestStore_AssessmentLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	tenantID := uuid.NewString()

	a := seedAssessment(t, store, tenantID)

	got, err := store.GetAssessment(ctx, tenantID, a.ID)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if got.Status != assessment.StatusDraft || got.Version != 1 {
		t.Fatalf("fresh assessment = (%s, v%d)", got.Status, got.Version)
	}
	if got.Weights[dimension.Data] != 0.25 {
		t.Fatalf("weights did not round-trip: %v", got.Weights)
	}

	// Tenant isolation.
	if _, err := store.GetAssessment(ctx, uuid.NewString(), a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant read = %v, want ErrNotFound", err)
	}

	// Response insert bumps version and moves draft to in_progress.
	responses := []assessment.Response{{
		ID: uuid.NewString(), AssessmentID: a.ID, QuestionID: "q-data",
		Dimension: dimension.Data, Value: 70, CreatedAt: time.Now().UTC(),
	}}
	if err := store.InsertResponses(ctx, tenantID, a.ID, 1, responses); err != nil {
		t.Fatalf("InsertResponses: %v", err)
	}
	if err := store.InsertResponses(ctx, tenantID, a.ID, 1, responses); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale InsertResponses = %v, want ErrConflict", err)
	}

	got, err = store.GetAssessment(ctx, tenantID, a.ID)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if got.Status != assessment.StatusInProgress || got.Version != 2 {
		t.Fatalf("after submit = (%s, v%d), want (in_progress, v2)", got.Status, got.Version)
	}

	// Completion CAS: the winning write seals the row, a replay conflicts.
	overall, level := 70.0, 4
	now := time.Now().UTC()
	got.Status = assessment.StatusCompleted
	got.Scores = map[dimension.Dimension]float64{dimension.Data: 70}
	got.OverallScore = &overall
	got.MaturityLevel = &level
	got.MaturityLabel = "Managed"
	got.UpdatedAt = now
	got.CompletedAt = &now
	if err := store.CompleteAssessment(ctx, got, 2); err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}
	if err := store.CompleteAssessment(ctx, got, 3); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second CompleteAssessment = %v, want ErrConflict", err)
	}
}

func TestStore_BenchmarkUpsert(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	industry := "it-" + uuid.NewString()[:8]

	now := time.Now().UTC()
	b := &benchmark.Benchmark{
		ID: uuid.NewString(), Industry: industry, Dimension: "overall",
		Period: "2026-Q1", PeerScores: []float64{10, 20, 30},
		CreatedAt: now, UpdatedAt: now,
	}
	if err := store.UpsertBenchmark(ctx, b); err != nil {
		t.Fatalf("UpsertBenchmark: %v", err)
	}

	// Same segment again: refresh in place.
	b.ID = uuid.NewString()
	b.PeerScores = []float64{15, 25, 35, 45}
	if err := store.UpsertBenchmark(ctx, b); err != nil {
		t.Fatalf("UpsertBenchmark refresh: %v", err)
	}

	got, err := store.GetBenchmark(ctx, industry, "overall", "2026-Q1")
	if err != nil {
		t.Fatalf("GetBenchmark: %v", err)
	}
	if len(got.PeerScores) != 4 {
		t.Fatalf("refresh did not apply: %v", got.PeerScores)
	}

	b.ID = uuid.NewString()
	b.Period = "2026-Q2"
	if err := store.UpsertBenchmark(ctx, b); err != nil {
		t.Fatalf("UpsertBenchmark new period: %v", err)
	}
	latest, err := store.LatestBenchmark(ctx, industry, "overall")
	if err != nil {
		t.Fatalf("LatestBenchmark: %v", err)
	}
	if latest.Period != "2026-Q2" {
		t.Fatalf("LatestBenchmark period = %s, want 2026-Q2", latest.Period)
	}
}

func TestStore_PilotUpdateAndLog(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	tenantID := uuid.NewString()

	a := seedAssessment(t, store, tenantID)
	now := time.Now().UTC()
	p := &pilot.Pilot{
		ID: uuid.NewString(), TenantID: tenantID, AssessmentID: a.ID,
		Name: "integration pilot", Status: pilot.StatusInProgress,
		SuccessCriteria: []pilot.SuccessCriterion{{Metric: "m", Target: 1, MeasurementMethod: "x"}},
		FailureModes:    []pilot.FailureMode{{Description: "d", Mitigation: "m"}},
		Stakeholders:    map[string]string{"sponsor": "S"},
		Version:         1, CreatedAt: now, UpdatedAt: now,
	}
	if err := store.CreatePilot(ctx, p); err != nil {
		t.Fatalf("CreatePilot: %v", err)
	}

	p.ExecutionLog = append(p.ExecutionLog, pilot.ExecutionLogEntry{
		ID: uuid.NewString(), PilotID: p.ID, Week: 1, Status: pilot.EntryOnTrack,
		Metrics: map[string]float64{"m": 0.5}, CreatedAt: now,
	})
	p.UpdatedAt = now
	if err := store.UpdatePilot(ctx, p, 1); err != nil {
		t.Fatalf("UpdatePilot: %v", err)
	}
	if err := store.UpdatePilot(ctx, p, 1); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale UpdatePilot = %v, want ErrConflict", err)
	}

	got, err := store.GetPilot(ctx, tenantID, p.ID)
	if err != nil {
		t.Fatalf("GetPilot: %v", err)
	}
	if got.Version != 2 || len(got.ExecutionLog) != 1 {
		t.Fatalf("pilot after update = v%d with %d entries", got.Version, len(got.ExecutionLog))
	}
	if got.ExecutionLog[0].Metrics["m"] != 0.5 {
		t.Fatalf("metrics did not round-trip: %v", got.ExecutionLog[0].Metrics)
	}
}
