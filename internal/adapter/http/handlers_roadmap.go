package http

import (
	"net/http"

	"github.com/adoptiq/maturity/internal/domain/roadmap"
)

// GenerateRoadmap handles POST /api/v1/assessments/{id}/roadmap
func (h *Handlers) GenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, err := h.Roadmaps.Generate(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusCreated, rm)
}

// ListRoadmaps handles GET /api/v1/assessments/{id}/roadmaps
func (h *Handlers) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	list, err := h.Roadmaps.List(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "roadmap listing failed")
		return
	}
	if list == nil {
		list = []roadmap.Roadmap{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetRoadmap handles GET /api/v1/roadmaps/{id}
func (h *Handlers) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, err := h.Roadmaps.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "roadmap not found")
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

// PublishRoadmap handles POST /api/v1/roadmaps/{id}/publish
func (h *Handlers) PublishRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, err := h.Roadmaps.Publish(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "roadmap not found")
		return
	}
	writeJSON(w, http.StatusOK, rm)
}
