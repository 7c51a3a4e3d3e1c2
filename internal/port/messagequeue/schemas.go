package messagequeue

import "time"

// AssessmentCreatedPayload is the schema for assessment.created messages.
type AssessmentCreatedPayload struct {
	AssessmentID     string    `json:"assessment_id"`
	TenantID         string    `json:"tenant_id"`
	OrganizationName string    `json:"organization_name"`
	Industry         string    `json:"industry"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// AssessmentCompletedPayload is the schema for assessment.completed messages.
type AssessmentCompletedPayload struct {
	AssessmentID  string             `json:"assessment_id"`
	TenantID      string             `json:"tenant_id"`
	OverallScore  float64            `json:"overall_score"`
	MaturityLevel int                `json:"maturity_level"`
	MaturityLabel string             `json:"maturity_label"`
	Dimensions    map[string]float64 `json:"dimension_scores"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

// RoadmapGeneratedPayload is the schema for roadmap.generated messages.
type RoadmapGeneratedPayload struct {
	RoadmapID       string    `json:"roadmap_id"`
	AssessmentID    string    `json:"assessment_id"`
	TenantID        string    `json:"tenant_id"`
	InitiativeCount int       `json:"initiative_count"`
	CatalogVersion  string    `json:"catalog_version"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// PilotDesignedPayload is the schema for pilot.designed messages.
type PilotDesignedPayload struct {
	PilotID      string    `json:"pilot_id"`
	AssessmentID string    `json:"assessment_id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// PilotStatusChangedPayload is the schema for pilot.status_changed messages.
type PilotStatusChangedPayload struct {
	PilotID    string    `json:"pilot_id"`
	TenantID   string    `json:"tenant_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	AtRisk     bool      `json:"at_risk"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReportGeneratedPayload is the schema for report.generated messages.
type ReportGeneratedPayload struct {
	ReportID     string    `json:"report_id"`
	AssessmentID string    `json:"assessment_id"`
	TenantID     string    `json:"tenant_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
