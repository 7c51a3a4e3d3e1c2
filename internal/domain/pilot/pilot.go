// Package pilot contains the pilot accelerator workflow: the design gate and
// the execution state machine.
package pilot

import "time"

// Status is the pilot lifecycle state.
type Status string

const (
	StatusDesigned   Status = "designed"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether s accepts no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Valid reports whether s names a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDesigned, StatusApproved, StatusInProgress,
		StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// SuccessCriterion is one quantifiable target the pilot commits to before
// approval.
type SuccessCriterion struct {
	Metric            string  `json:"metric"`
	Target            float64 `json:"target"`
	MeasurementMethod string  `json:"measurement_method"`
}

// FailureMode pairs an anticipated failure with its mitigation.
type FailureMode struct {
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

// EntryStatus is the weekly self-reported execution status. It is a snapshot
// inside a log entry, distinct from the pilot's lifecycle Status.
type EntryStatus string

const (
	EntryOnTrack EntryStatus = "on_track"
	EntryAtRisk  EntryStatus = "at_risk"
	EntryBlocked EntryStatus = "blocked"
)

// ValidEntryStatus reports whether s names a known weekly status.
func ValidEntryStatus(s EntryStatus) bool {
	switch s {
	case EntryOnTrack, EntryAtRisk, EntryBlocked:
		return true
	default:
		return false
	}
}

// ExecutionLogEntry is one weekly, append-only progress record. Metrics are
// keyed by success-criterion metric name.
type ExecutionLogEntry struct {
	ID        string             `json:"id"`
	PilotID   string             `json:"pilot_id"`
	Week      int                `json:"week"`
	Status    EntryStatus        `json:"status"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Blockers  []string           `json:"blockers,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// HasBlockers reports whether the entry carries any blocker.
func (e *ExecutionLogEntry) HasBlockers() bool {
	return len(e.Blockers) > 0
}

// Pilot is one accelerator engagement tied to an assessment and, usually, a
// roadmap initiative.
type Pilot struct {
	ID              string              `json:"id"`
	TenantID        string              `json:"tenant_id"`
	AssessmentID    string              `json:"assessment_id"`
	RoadmapID       string              `json:"roadmap_id,omitempty"`
	Name            string              `json:"name"`
	Status          Status              `json:"status"`
	SuccessCriteria []SuccessCriterion  `json:"success_criteria"`
	FailureModes    []FailureMode       `json:"failure_modes"`
	Stakeholders    map[string]string   `json:"stakeholders"` // role -> name
	ExecutionLog    []ExecutionLogEntry `json:"execution_log,omitempty"`
	AtRisk          bool                `json:"at_risk"`
	Version         int                 `json:"version"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	StartedAt       *time.Time          `json:"started_at,omitempty"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
}

// DesignRequest is the intake payload for a new pilot design.
type DesignRequest struct {
	AssessmentID    string             `json:"assessment_id"`
	RoadmapID       string             `json:"roadmap_id,omitempty"`
	Name            string             `json:"name"`
	SuccessCriteria []SuccessCriterion `json:"success_criteria"`
	FailureModes    []FailureMode      `json:"failure_modes"`
	Stakeholders    map[string]string  `json:"stakeholders"`
}

// LogEntryRequest is the intake payload for a weekly execution-log append.
type LogEntryRequest struct {
	Week     int                `json:"week"`
	Status   EntryStatus        `json:"status"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Blockers []string           `json:"blockers,omitempty"`
	Notes    string             `json:"notes,omitempty"`
}
