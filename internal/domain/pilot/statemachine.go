package pilot

import (
	"fmt"
	"time"

	"github.com/adoptiq/maturity/internal/domain"
)

// transitions is the legal transition table. Legality lives in one place so
// it can be checked exhaustively; preconditions beyond table membership are
// applied in Transition.
var transitions = map[Status][]Status{
	StatusDesigned:   {StatusApproved, StatusCancelled},
	StatusApproved:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusFailed, StatusCancelled},
}

// CanTransition reports whether the table allows from -> to.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition applies one lifecycle transition in place. Approval runs the
// design gate first. Entering in_progress stamps StartedAt; entering a
// terminal state stamps CompletedAt. Illegal pairs fail with ErrState naming
// both states; the pilot is left untouched on any failure.
func Transition(p *Pilot, to Status, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("unknown pilot status %q: %w", to, domain.ErrValidation)
	}
	if !CanTransition(p.Status, to) {
		return fmt.Errorf("illegal pilot transition %s -> %s: %w", p.Status, to, domain.ErrState)
	}
	if p.Status == StatusDesigned && to == StatusApproved {
		if err := ValidateGate(p); err != nil {
			return err
		}
	}

	p.Status = to
	switch {
	case to == StatusInProgress:
		p.StartedAt = &now
	case to.Terminal():
		p.CompletedAt = &now
	}
	return nil
}

// AppendLogEntry validates and appends one weekly execution-log entry, then
// rederives the advisory at-risk flag. Appends are only legal while the pilot
// is in progress, and week indexes must be strictly increasing. A zero week
// index means "unspecified" and is derived from the time elapsed since the
// pilot started.
func AppendLogEntry(p *Pilot, req *LogEntryRequest, now time.Time) (*ExecutionLogEntry, error) {
	if p.Status != StatusInProgress {
		return nil, fmt.Errorf("execution log closed while pilot is %s: %w", p.Status, domain.ErrState)
	}
	week := req.Week
	if week == 0 {
		week = deriveWeek(p, now)
	}
	if week < 1 {
		return nil, fmt.Errorf("week index %d must be positive: %w", week, domain.ErrValidation)
	}
	if !ValidEntryStatus(req.Status) {
		return nil, fmt.Errorf("unknown entry status %q: %w", req.Status, domain.ErrValidation)
	}
	if n := len(p.ExecutionLog); n > 0 {
		last := p.ExecutionLog[n-1].Week
		if week <= last {
			return nil, fmt.Errorf("week %d not after latest logged week %d: %w",
				week, last, domain.ErrValidation)
		}
	}

	entry := ExecutionLogEntry{
		PilotID:   p.ID,
		Week:      week,
		Status:    req.Status,
		Metrics:   req.Metrics,
		Blockers:  req.Blockers,
		Notes:     req.Notes,
		CreatedAt: now,
	}
	p.ExecutionLog = append(p.ExecutionLog, entry)
	p.AtRisk = deriveAtRisk(p)
	return &p.ExecutionLog[len(p.ExecutionLog)-1], nil
}

// deriveWeek returns the 1-based calendar week of now relative to the pilot
// start date.
func deriveWeek(p *Pilot, now time.Time) int {
	if p.StartedAt == nil {
		return len(p.ExecutionLog) + 1
	}
	return int(now.Sub(*p.StartedAt)/(7*24*time.Hour)) + 1
}

// deriveAtRisk computes the advisory flag from the log tail. The flag is
// informational only and never forces a transition. A pilot is at risk when
// the two latest entries both report blockers, or when a tracked
// success-criterion metric declined versus the prior entry.
func deriveAtRisk(p *Pilot) bool {
	n := len(p.ExecutionLog)
	if n == 0 {
		return false
	}

	if n >= 2 {
		latest, prior := &p.ExecutionLog[n-1], &p.ExecutionLog[n-2]
		if latest.HasBlockers() && prior.HasBlockers() {
			return true
		}
		for _, c := range p.SuccessCriteria {
			cur, okCur := latest.Metrics[c.Metric]
			prev, okPrev := prior.Metrics[c.Metric]
			if okCur && okPrev && cur < prev {
				return true
			}
		}
	}
	return false
}
