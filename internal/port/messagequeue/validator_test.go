package messagequeue

import (
	"testing"
	"time"
)

func TestValidateAcceptsKnownPayloads(t *testing.T) {
	tests := []struct {
		subject string
		data    string
	}{
		{SubjectAssessmentCreated, `{"assessment_id":"a-1","tenant_id":"t-1","organization_name":"Acme","industry":"retail","occurred_at":"2026-08-24T12:00:00Z"}`},
		{SubjectAssessmentCompleted, `{"assessment_id":"a-1","tenant_id":"t-1","overall_score":55,"maturity_level":3,"maturity_label":"Defined"}`},
		{SubjectRoadmapGenerated, `{"roadmap_id":"r-1","assessment_id":"a-1","tenant_id":"t-1","initiative_count":4}`},
		{SubjectPilotDesigned, `{"pilot_id":"p-1","assessment_id":"a-1","tenant_id":"t-1","name":"triage"}`},
		{SubjectPilotStatusChanged, `{"pilot_id":"p-1","tenant_id":"t-1","from_status":"designed","to_status":"approved"}`},
		{SubjectReportGenerated, `{"report_id":"rep-1","assessment_id":"a-1","tenant_id":"t-1"}`},
		{"some.future.subject", `{"anything":"goes"}`},
	}
	for _, tt := range tests {
		if err := Validate(tt.subject, []byte(tt.data)); err != nil {
			t.Errorf("Validate(%s) = %v, want nil", tt.subject, err)
		}
	}
}

func TestValidateRejectsMalformedPayloads(t *testing.T) {
	if err := Validate(SubjectAssessmentCreated, []byte(`{not json`)); err == nil {
		t.Error("Validate accepted invalid JSON")
	}
	// Wrong field type for a known schema.
	if err := Validate(SubjectAssessmentCompleted, []byte(`{"overall_score":"high"}`)); err == nil {
		t.Error("Validate accepted a mistyped payload")
	}
	if err := Validate(SubjectPilotStatusChanged, []byte(`{"at_risk":"yes"}`)); err == nil {
		t.Error("Validate accepted a mistyped payload")
	}
}

func TestValidateTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
	data := `{"report_id":"rep-1","assessment_id":"a-1","tenant_id":"t-1","occurred_at":"` + ts + `"}`
	if err := Validate(SubjectReportGenerated, []byte(data)); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
