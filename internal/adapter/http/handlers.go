// Package http provides the REST handler adapters.
package http

import (
	"net/http"

	"github.com/adoptiq/maturity/internal/port/messagequeue"
	"github.com/adoptiq/maturity/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Assessments *service.AssessmentService
	Benchmarks  *service.BenchmarkService
	Roadmaps    *service.RoadmapService
	Pilots      *service.PilotService
	Reports     *service.ReportService
	Queue       messagequeue.Queue
}

// Healthz handles GET /healthz.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz. Readiness requires the message queue connection.
func (h *Handlers) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.Queue != nil && !h.Queue.IsConnected() {
		writeError(w, http.StatusServiceUnavailable, "message queue disconnected")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
