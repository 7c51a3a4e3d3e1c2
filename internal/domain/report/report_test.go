package report

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/benchmark"
	"github.com/adoptiq/maturity/internal/domain/dimension"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
)

var assembleNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func completedAssessment() *assessment.Assessment {
	overall := 55.0
	level := 3
	return &assessment.Assessment{
		ID:               "a-1",
		TenantID:         "t-1",
		OrganizationName: "Acme Manufacturing",
		Industry:         "manufacturing",
		OrganizationSize: "enterprise",
		Status:           assessment.StatusCompleted,
		Scores: map[dimension.Dimension]float64{
			dimension.Data: 80, dimension.Process: 60, dimension.People: 40,
			dimension.Technology: 60, dimension.Governance: 20,
		},
		OverallScore:  &overall,
		MaturityLevel: &level,
		MaturityLabel: "Defined",
	}
}

func TestAssembleRequiresCompletedAssessment(t *testing.T) {
	a := completedAssessment()
	a.Status = assessment.StatusInProgress
	_, err := Assemble(a, nil, nil, nil, assembleNow)
	if !errors.Is(err, domain.ErrState) {
		t.Errorf("Assemble() on in_progress assessment = %v, want ErrState", err)
	}
}

func TestAssembleCarriesScoresAndIdentity(t *testing.T) {
	a := completedAssessment()
	r, err := Assemble(a, nil, nil, nil, assembleNow)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if r.AssessmentID != a.ID || r.TenantID != a.TenantID {
		t.Errorf("report identity (%s, %s), want (%s, %s)", r.AssessmentID, r.TenantID, a.ID, a.TenantID)
	}
	if r.Scores.Overall != 55 || r.Scores.Level != 3 || r.Scores.Label != "Defined" {
		t.Errorf("scores snapshot = %+v", r.Scores)
	}
	if r.Benchmark != nil || r.RoadmapID != "" || r.Pilot != nil {
		t.Error("optional sections present without sources")
	}
}

func TestAssembleFlagsLowConfidenceBenchmark(t *testing.T) {
	a := completedAssessment()
	cmp := &benchmark.Comparison{
		Industry: "manufacturing", Dimension: benchmark.DimensionOverall,
		Score: 55, Percentile: 62.5, PeerCount: 4,
	}
	r, err := Assemble(a, cmp, nil, nil, assembleNow)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if !r.LowConfidence {
		t.Errorf("LowConfidence = false with %d peers, want true below %d",
			cmp.PeerCount, benchmark.MinReliablePeers)
	}

	cmp.PeerCount = benchmark.MinReliablePeers
	r, err = Assemble(a, cmp, nil, nil, assembleNow)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if r.LowConfidence {
		t.Errorf("LowConfidence = true with %d peers", cmp.PeerCount)
	}
}

func TestAssembleSummarizesPilot(t *testing.T) {
	a := completedAssessment()
	pl := &pilot.Pilot{
		ID: "p-1", Name: "invoice triage pilot", Status: pilot.StatusInProgress, AtRisk: true,
		ExecutionLog: []pilot.ExecutionLogEntry{{Week: 1}, {Week: 2}},
	}
	rm := &roadmap.Roadmap{ID: "r-1", Initiatives: []roadmap.Initiative{{TemplateID: "data-l1-inventory", Rank: 1}}}

	r, err := Assemble(a, nil, rm, pl, assembleNow)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if r.RoadmapID != "r-1" || len(r.Initiatives) != 1 {
		t.Errorf("roadmap section = (%s, %d initiatives)", r.RoadmapID, len(r.Initiatives))
	}
	want := &PilotSummary{ID: "p-1", Name: "invoice triage pilot", Status: pilot.StatusInProgress, AtRisk: true, WeeksLogged: 2}
	if !reflect.DeepEqual(r.Pilot, want) {
		t.Errorf("pilot summary = %+v, want %+v", r.Pilot, want)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	a := completedAssessment()
	r1, err := Assemble(a, nil, nil, nil, assembleNow)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Assemble(a, nil, nil, nil, assembleNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("identical inputs produced different reports")
	}
}
