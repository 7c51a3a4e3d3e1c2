// Package assessment contains the maturity assessment domain model and the
// dimension scoring engine.
package assessment

import (
	"time"

	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// Status represents the lifecycle state of an assessment.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Industry verticals accepted at intake.
var ValidIndustries = map[string]bool{
	"financial_services": true,
	"healthcare":         true,
	"manufacturing":      true,
	"retail":             true,
	"technology":         true,
	"government":         true,
	"other":              true,
}

// Organization size segments accepted at intake.
var ValidOrgSizes = map[string]bool{
	"startup":          true,
	"smb":              true,
	"mid_market":       true,
	"enterprise":       true,
	"large_enterprise": true,
}

// Assessment is a maturity assessment instance for one organization.
// Score fields stay nil until scoring completes; once Status is
// StatusCompleted they are immutable.
type Assessment struct {
	ID               string                          `json:"id"`
	TenantID         string                          `json:"tenant_id,omitempty"`
	OrganizationName string                          `json:"organization_name"`
	Industry         string                          `json:"industry"`
	OrganizationSize string                          `json:"organization_size"`
	Status           Status                          `json:"status"`
	Weights          dimension.Weights               `json:"dimension_weights"`
	Scores           map[dimension.Dimension]float64 `json:"dimension_scores,omitempty"`
	OverallScore     *float64                        `json:"overall_score,omitempty"`
	MaturityLevel    *int                            `json:"maturity_level,omitempty"`
	MaturityLabel    string                          `json:"maturity_label,omitempty"`
	Version          int                             `json:"version"`
	CreatedAt        time.Time                       `json:"created_at"`
	UpdatedAt        time.Time                       `json:"updated_at"`
	CompletedAt      *time.Time                      `json:"completed_at,omitempty"`
}

// Completed reports whether the assessment has been scored and sealed.
func (a *Assessment) Completed() bool {
	return a.Status == StatusCompleted
}

// Response is one diagnostic question answer within an assessment. Weight is
// the question's share within its dimension; zero means "unspecified" and
// scoring substitutes an equal weight.
type Response struct {
	ID           string              `json:"id"`
	AssessmentID string              `json:"assessment_id"`
	QuestionID   string              `json:"question_id"`
	Dimension    dimension.Dimension `json:"dimension"`
	Value        float64             `json:"value"`
	Weight       float64             `json:"weight,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// CreateRequest holds the intake fields for a new assessment.
type CreateRequest struct {
	OrganizationName string            `json:"organization_name"`
	Industry         string            `json:"industry"`
	OrganizationSize string            `json:"organization_size"`
	Weights          dimension.Weights `json:"dimension_weights,omitempty"`
}

// SubmitResponsesRequest carries a batch of responses for one assessment.
type SubmitResponsesRequest struct {
	Responses []ResponseInput `json:"responses"`
}

// ResponseInput is one response as submitted by the caller.
type ResponseInput struct {
	QuestionID string              `json:"question_id"`
	Dimension  dimension.Dimension `json:"dimension"`
	Value      float64             `json:"value"`
	Weight     float64             `json:"weight,omitempty"`
}

// ListFilter narrows assessment listings.
type ListFilter struct {
	Status   Status
	Industry string
}
