package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/adoptiq/maturity/internal/domain/report"
	"github.com/adoptiq/maturity/internal/service"
)

// GenerateReport handles POST /api/v1/assessments/{id}/report
// The body is optional; an empty body generates a report with the default
// roadmap and pilot resolution.
func (h *Handlers) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rep, err := h.Reports.Generate(r.Context(), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

// GetReport handles GET /api/v1/reports/{id}
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Reports.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ListReports handles GET /api/v1/assessments/{id}/reports
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reports.List(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "report listing failed")
		return
	}
	if list == nil {
		list = []report.Report{}
	}
	writeJSON(w, http.StatusOK, list)
}
