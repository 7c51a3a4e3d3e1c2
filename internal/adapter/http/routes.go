package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Assessments
		r.Post("/assessments", h.CreateAssessment)
		r.Get("/assessments", h.ListAssessments)
		r.Get("/assessments/{id}", h.GetAssessment)
		r.Post("/assessments/{id}/responses", h.SubmitResponses)
		r.Post("/assessments/{id}/score", h.ScoreAssessment)
		r.Get("/assessments/{id}/breakdown", h.GetBreakdown)
		r.Get("/assessments/{id}/benchmark", h.CompareAssessment)

		// Roadmaps (nested under assessments + direct access)
		r.Post("/assessments/{id}/roadmap", h.GenerateRoadmap)
		r.Get("/assessments/{id}/roadmaps", h.ListRoadmaps)
		r.Get("/roadmaps/{id}", h.GetRoadmap)
		r.Post("/roadmaps/{id}/publish", h.PublishRoadmap)

		// Pilots (nested under assessments + direct access)
		r.Post("/pilots", h.DesignPilot)
		r.Get("/assessments/{id}/pilots", h.ListPilots)
		r.Get("/pilots/{id}", h.GetPilot)
		r.Post("/pilots/{id}/transition", h.TransitionPilot)
		r.Post("/pilots/{id}/log", h.AppendPilotLog)

		// Reports (nested under assessments + direct access)
		r.Post("/assessments/{id}/report", h.GenerateReport)
		r.Get("/assessments/{id}/reports", h.ListReports)
		r.Get("/reports/{id}", h.GetReport)

		// Benchmark reference data
		r.Put("/benchmarks", h.UpsertBenchmark)
		r.Get("/benchmarks", h.GetBenchmark)
	})
}
