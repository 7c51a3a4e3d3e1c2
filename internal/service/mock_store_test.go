package service

import (
	"context"
	"sort"
	"sync"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/domain/report"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
	"github.com/adoptiq/maturity/internal/port/database"
	"github.com/adoptiq/maturity/internal/port/messagequeue"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is a minimal in-memory implementation of database.Store for
// testing. It honors tenant scoping and version CAS the way the postgres
// adapter does.
type mockStore struct {
	assessments map[string]*assessment.Assessment
	responses   map[string][]assessment.Response
	benchmarks  []*benchmark.Benchmark
	roadmaps    map[string]*roadmap.Roadmap
	pilots      map[string]*pilot.Pilot
	reports     map[string]*report.Report

	// Error hooks — set these to inject failures.
	createAssessmentErr error
	insertResponsesErr  error
	completeErr         error
	updatePilotErr      error
}

func newMockStore() *mockStore {
	return &mockStore{
		assessments: map[string]*assessment.Assessment{},
		responses:   map[string][]assessment.Response{},
		roadmaps:    map[string]*roadmap.Roadmap{},
		pilots:      map[string]*pilot.Pilot{},
		reports:     map[string]*report.Report{},
	}
}

func (m *mockStore) CreateAssessment(_ context.Context, a *assessment.Assessment) error {
	if m.createAssessmentErr != nil {
		return m.createAssessmentErr
	}
	cp := *a
	m.assessments[a.ID] = &cp
	return nil
}

func (m *mockStore) GetAssessment(_ context.Context, tenantID, id string) (*assessment.Assessment, error) {
	a, ok := m.assessments[id]
	if !ok || a.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockStore) ListAssessments(_ context.Context, tenantID string, filter assessment.ListFilter) ([]assessment.Assessment, error) {
	var out []assessment.Assessment
	for _, a := range m.assessments {
		if a.TenantID != tenantID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Industry != "" && a.Industry != filter.Industry {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) InsertResponses(_ context.Context, tenantID, assessmentID string, expectedVersion int, responses []assessment.Response) error {
	if m.insertResponsesErr != nil {
		return m.insertResponsesErr
	}
	a, ok := m.assessments[assessmentID]
	if !ok || a.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if a.Version != expectedVersion {
		return domain.ErrConflict
	}
	m.responses[assessmentID] = append(m.responses[assessmentID], responses...)
	a.Version++
	if a.Status == assessment.StatusDraft {
		a.Status = assessment.StatusInProgress
	}
	return nil
}

func (m *mockStore) ListResponses(_ context.Context, tenantID, assessmentID string) ([]assessment.Response, error) {
	a, ok := m.assessments[assessmentID]
	if !ok || a.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return m.responses[assessmentID], nil
}

func (m *mockStore) CompleteAssessment(_ context.Context, a *assessment.Assessment, expectedVersion int) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	stored, ok := m.assessments[a.ID]
	if !ok || stored.TenantID != a.TenantID {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion || stored.Status == assessment.StatusCompleted {
		return domain.ErrConflict
	}
	cp := *a
	cp.Version = expectedVersion + 1
	m.assessments[a.ID] = &cp
	a.Version = cp.Version
	return nil
}

func (m *mockStore) UpsertBenchmark(_ context.Context, b *benchmark.Benchmark) error {
	for i, old := range m.benchmarks {
		if old.Industry == b.Industry && old.Dimension == b.Dimension && old.Period == b.Period {
			cp := *b
			m.benchmarks[i] = &cp
			return nil
		}
	}
	cp := *b
	m.benchmarks = append(m.benchmarks, &cp)
	return nil
}

func (m *mockStore) GetBenchmark(_ context.Context, industry, dim, period string) (*benchmark.Benchmark, error) {
	for _, b := range m.benchmarks {
		if b.Industry == industry && b.Dimension == dim && b.Period == period {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) LatestBenchmark(_ context.Context, industry, dim string) (*benchmark.Benchmark, error) {
	var latest *benchmark.Benchmark
	for _, b := range m.benchmarks {
		if b.Industry != industry || b.Dimension != dim {
			continue
		}
		if latest == nil || b.Period > latest.Period {
			latest = b
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *mockStore) CreateRoadmap(_ context.Context, r *roadmap.Roadmap) error {
	cp := *r
	m.roadmaps[r.ID] = &cp
	return nil
}

func (m *mockStore) GetRoadmap(_ context.Context, tenantID, id string) (*roadmap.Roadmap, error) {
	r, ok := m.roadmaps[id]
	if !ok || r.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockStore) ListRoadmaps(_ context.Context, tenantID, assessmentID string) ([]roadmap.Roadmap, error) {
	var out []roadmap.Roadmap
	for _, r := range m.roadmaps {
		if r.TenantID == tenantID && r.AssessmentID == assessmentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) UpdateRoadmapStatus(_ context.Context, tenantID, id string, status roadmap.Status, expectedVersion int) (*roadmap.Roadmap, error) {
	r, ok := m.roadmaps[id]
	if !ok || r.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if r.Version != expectedVersion {
		return nil, domain.ErrConflict
	}
	r.Status = status
	r.Version++
	cp := *r
	return &cp, nil
}

func (m *mockStore) SupersedePublished(_ context.Context, tenantID, assessmentID, exceptID string) error {
	for _, r := range m.roadmaps {
		if r.TenantID == tenantID && r.AssessmentID == assessmentID &&
			r.ID != exceptID && r.Status == roadmap.StatusPublished {
			r.Status = roadmap.StatusSuperseded
			r.Version++
		}
	}
	return nil
}

func (m *mockStore) CreatePilot(_ context.Context, p *pilot.Pilot) error {
	cp := *p
	m.pilots[p.ID] = &cp
	return nil
}

func (m *mockStore) GetPilot(_ context.Context, tenantID, id string) (*pilot.Pilot, error) {
	p, ok := m.pilots[id]
	if !ok || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.ExecutionLog = append([]pilot.ExecutionLogEntry(nil), p.ExecutionLog...)
	return &cp, nil
}

func (m *mockStore) ListPilots(_ context.Context, tenantID, assessmentID string) ([]pilot.Pilot, error) {
	var out []pilot.Pilot
	for _, p := range m.pilots {
		if p.TenantID == tenantID && p.AssessmentID == assessmentID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) UpdatePilot(_ context.Context, p *pilot.Pilot, expectedVersion int) error {
	if m.updatePilotErr != nil {
		return m.updatePilotErr
	}
	stored, ok := m.pilots[p.ID]
	if !ok || stored.TenantID != p.TenantID {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	cp := *p
	cp.ExecutionLog = append([]pilot.ExecutionLogEntry(nil), p.ExecutionLog...)
	cp.Version = expectedVersion + 1
	m.pilots[p.ID] = &cp
	p.Version = cp.Version
	return nil
}

func (m *mockStore) CreateReport(_ context.Context, r *report.Report) error {
	cp := *r
	m.reports[r.ID] = &cp
	return nil
}

func (m *mockStore) GetReport(_ context.Context, tenantID, id string) (*report.Report, error) {
	r, ok := m.reports[id]
	if !ok || r.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockStore) ListReports(_ context.Context, tenantID, assessmentID string) ([]report.Report, error) {
	var out []report.Report
	for _, r := range m.reports {
		if r.TenantID == tenantID && r.AssessmentID == assessmentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	return out, nil
}

// Ensure mockQueue implements messagequeue.Queue at compile time.
var _ messagequeue.Queue = (*mockQueue)(nil)

// mockQueue records published messages.
type mockQueue struct {
	mu         sync.Mutex
	published  []string // subjects in publish order
	publishErr error
}

func (m *mockQueue) Publish(_ context.Context, subject string, _ []byte) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, subject)
	return nil
}

func (m *mockQueue) Subscribe(_ context.Context, _ string, _ messagequeue.Handler) (func(), error) {
	return func() {}, nil
}

func (m *mockQueue) Drain() error      { return nil }
func (m *mockQueue) Close() error      { return nil }
func (m *mockQueue) IsConnected() bool { return true }

func (m *mockQueue) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}
