package pilot

import (
	"fmt"
	"strings"

	"github.com/adoptiq/maturity/internal/domain"
)

// MinSuccessCriteria is the gate's minimum number of complete success
// criteria.
const MinSuccessCriteria = 3

// ValidateDesign checks the intake payload for a new pilot. Structural gate
// checks are deferred to approval time; this only rejects input the store
// cannot hold.
func ValidateDesign(req *DesignRequest) error {
	if req.AssessmentID == "" {
		return fmt.Errorf("assessment_id is required: %w", domain.ErrValidation)
	}
	if req.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	return nil
}

// ValidateGate is the approval gate: a pure predicate over the pilot design.
// It reports every failed condition in a single error so callers can fix the
// whole design in one pass, instead of surfacing failures one at a time.
//
// Gate conditions:
//   - at least MinSuccessCriteria success criteria, each with a metric name,
//     a positive target, and a measurement method
//   - at least one failure mode, each with a mitigation
//   - a non-empty stakeholder map
func ValidateGate(p *Pilot) error {
	var failures []string

	complete := 0
	for i, c := range p.SuccessCriteria {
		switch {
		case c.Metric == "":
			failures = append(failures, fmt.Sprintf("success criterion %d has no metric name", i+1))
		case c.MeasurementMethod == "":
			failures = append(failures, fmt.Sprintf("success criterion %q has no measurement method", c.Metric))
		case c.Target <= 0:
			failures = append(failures, fmt.Sprintf("success criterion %q has no numeric target", c.Metric))
		default:
			complete++
		}
	}
	if complete < MinSuccessCriteria {
		failures = append(failures, fmt.Sprintf("%d complete success criteria, need at least %d",
			complete, MinSuccessCriteria))
	}

	if len(p.FailureModes) == 0 {
		failures = append(failures, "at least one failure mode is required")
	}
	for i, m := range p.FailureModes {
		if m.Description == "" {
			failures = append(failures, fmt.Sprintf("failure mode %d has no description", i+1))
		}
		if m.Mitigation == "" {
			failures = append(failures, fmt.Sprintf("failure mode %d has no mitigation", i+1))
		}
	}

	if len(p.Stakeholders) == 0 {
		failures = append(failures, "stakeholders must not be empty")
	}

	if len(failures) > 0 {
		return fmt.Errorf("pilot gate failed: %s: %w", strings.Join(failures, "; "), domain.ErrValidation)
	}
	return nil
}
