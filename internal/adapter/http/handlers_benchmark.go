package http

import (
	"net/http"

	"github.com/adoptiq/maturity/internal/domain/benchmark"
)

// UpsertBenchmark handles PUT /api/v1/benchmarks
func (h *Handlers) UpsertBenchmark(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[benchmark.UpsertRequest](w, r)
	if !ok {
		return
	}

	b, err := h.Benchmarks.Upsert(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "benchmark upsert failed")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GetBenchmark handles GET /api/v1/benchmarks
// Query params: industry (required), dimension (required), period (optional,
// defaults to the latest period for the segment).
func (h *Handlers) GetBenchmark(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	industry, dim := q.Get("industry"), q.Get("dimension")
	if industry == "" || dim == "" {
		writeError(w, http.StatusBadRequest, "industry and dimension are required")
		return
	}

	b, err := h.Benchmarks.Get(r.Context(), industry, dim, q.Get("period"))
	if err != nil {
		writeDomainError(w, err, "benchmark not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}
