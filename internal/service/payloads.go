package service

import (
	"time"

	"github.com/adoptiq/maturity/internal/domain/assessment"
	"github.com/adoptiq/maturity/internal/domain/pilot"
	"github.com/adoptiq/maturity/internal/domain/report"
	"github.com/adoptiq/maturity/internal/domain/roadmap"
	"github.com/adoptiq/maturity/internal/port/messagequeue"
)

const (
	subjectAssessmentCreated   = messagequeue.SubjectAssessmentCreated
	subjectAssessmentCompleted = messagequeue.SubjectAssessmentCompleted
	subjectRoadmapGenerated    = messagequeue.SubjectRoadmapGenerated
	subjectPilotDesigned       = messagequeue.SubjectPilotDesigned
	subjectPilotStatusChanged  = messagequeue.SubjectPilotStatusChanged
	subjectReportGenerated     = messagequeue.SubjectReportGenerated
)

func assessmentCreatedPayload(a *assessment.Assessment, now time.Time) messagequeue.AssessmentCreatedPayload {
	return messagequeue.AssessmentCreatedPayload{
		AssessmentID:     a.ID,
		TenantID:         a.TenantID,
		OrganizationName: a.OrganizationName,
		Industry:         a.Industry,
		OccurredAt:       now,
	}
}

func assessmentCompletedPayload(a *assessment.Assessment, now time.Time) messagequeue.AssessmentCompletedPayload {
	dims := make(map[string]float64, len(a.Scores))
	for d, v := range a.Scores {
		dims[string(d)] = v
	}
	p := messagequeue.AssessmentCompletedPayload{
		AssessmentID: a.ID,
		TenantID:     a.TenantID,
		Dimensions:   dims,
		OccurredAt:   now,
	}
	if a.OverallScore != nil {
		p.OverallScore = *a.OverallScore
	}
	if a.MaturityLevel != nil {
		p.MaturityLevel = *a.MaturityLevel
	}
	p.MaturityLabel = a.MaturityLabel
	return p
}

func roadmapGeneratedPayload(r *roadmap.Roadmap, now time.Time) messagequeue.RoadmapGeneratedPayload {
	return messagequeue.RoadmapGeneratedPayload{
		RoadmapID:       r.ID,
		AssessmentID:    r.AssessmentID,
		TenantID:        r.TenantID,
		InitiativeCount: len(r.Initiatives),
		CatalogVersion:  r.CatalogVersion,
		OccurredAt:      now,
	}
}

func pilotDesignedPayload(p *pilot.Pilot, now time.Time) messagequeue.PilotDesignedPayload {
	return messagequeue.PilotDesignedPayload{
		PilotID:      p.ID,
		AssessmentID: p.AssessmentID,
		TenantID:     p.TenantID,
		Name:         p.Name,
		OccurredAt:   now,
	}
}

func pilotStatusChangedPayload(p *pilot.Pilot, from pilot.Status, now time.Time) messagequeue.PilotStatusChangedPayload {
	return messagequeue.PilotStatusChangedPayload{
		PilotID:    p.ID,
		TenantID:   p.TenantID,
		FromStatus: string(from),
		ToStatus:   string(p.Status),
		AtRisk:     p.AtRisk,
		OccurredAt: now,
	}
}

func reportGeneratedPayload(r *report.Report, now time.Time) messagequeue.ReportGeneratedPayload {
	return messagequeue.ReportGeneratedPayload{
		ReportID:     r.ID,
		AssessmentID: r.AssessmentID,
		TenantID:     r.TenantID,
		OccurredAt:   now,
	}
}
