package http

import (
	"net/http"

	"github.com/adoptiq/maturity/internal/domain/pilot"
)

// DesignPilot handles POST /api/v1/pilots
func (h *Handlers) DesignPilot(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[pilot.DesignRequest](w, r)
	if !ok {
		return
	}

	p, err := h.Pilots.Design(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "assessment not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetPilot handles GET /api/v1/pilots/{id}
func (h *Handlers) GetPilot(w http.ResponseWriter, r *http.Request) {
	p, err := h.Pilots.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "pilot not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListPilots handles GET /api/v1/assessments/{id}/pilots
func (h *Handlers) ListPilots(w http.ResponseWriter, r *http.Request) {
	list, err := h.Pilots.List(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "pilot listing failed")
		return
	}
	if list == nil {
		list = []pilot.Pilot{}
	}
	writeJSON(w, http.StatusOK, list)
}

// TransitionPilot handles POST /api/v1/pilots/{id}/transition
func (h *Handlers) TransitionPilot(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Status pilot.Status `json:"status"`
	}](w, r)
	if !ok {
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	p, err := h.Pilots.Transition(r.Context(), urlParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err, "pilot not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AppendPilotLog handles POST /api/v1/pilots/{id}/log
func (h *Handlers) AppendPilotLog(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[pilot.LogEntryRequest](w, r)
	if !ok {
		return
	}

	p, err := h.Pilots.AppendLog(r.Context(), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "pilot not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
