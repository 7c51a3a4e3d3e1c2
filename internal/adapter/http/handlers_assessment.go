package http

import (
	"net/http"

	"github.com/adoptiq/maturity/internal/domain/assessment"
)

// CreateAssessment handles POST /api/v1/assessments
func (h *Handlers) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[assessment.CreateRequest](w, r)
	if !ok {
		return
	}

	a, err := h.Assessments.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "assessment creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// GetAssessment handles GET /api/v1/assessments/{id}
func (h *Handlers) GetAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Assessments.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListAssessments handles GET /api/v1/assessments
func (h *Handlers) ListAssessments(w http.ResponseWriter, r *http.Request) {
	filter := assessment.ListFilter{
		Status:   assessment.Status(r.URL.Query().Get("status")),
		Industry: r.URL.Query().Get("industry"),
	}

	list, err := h.Assessments.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "assessment listing failed")
		return
	}
	if list == nil {
		list = []assessment.Assessment{}
	}
	writeJSON(w, http.StatusOK, list)
}

// SubmitResponses handles POST /api/v1/assessments/{id}/responses
func (h *Handlers) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[assessment.SubmitResponsesRequest](w, r)
	if !ok {
		return
	}

	id := urlParam(r, "id")
	if err := h.Assessments.SubmitResponses(r.Context(), id, &req); err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}

	a, err := h.Assessments.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ScoreAssessment handles POST /api/v1/assessments/{id}/score
func (h *Handlers) ScoreAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Assessments.Score(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetBreakdown handles GET /api/v1/assessments/{id}/breakdown
func (h *Handlers) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	b, err := h.Assessments.Breakdown(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CompareAssessment handles GET /api/v1/assessments/{id}/benchmark
func (h *Handlers) CompareAssessment(w http.ResponseWriter, r *http.Request) {
	comparisons, err := h.Benchmarks.Compare(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "no benchmark data for assessment")
		return
	}
	writeJSON(w, http.StatusOK, comparisons)
}
