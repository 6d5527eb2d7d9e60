package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-pos.git/internal/reports"
)

type SummaryReader interface {
	Summary(ctx context.Context) (reports.Summary, error)
}

type ReportsHandler struct {
	Reports SummaryReader
}

func (h *ReportsHandler) Register(r *chi.Mux) {
	r.Get("/reports/summary", h.summary)
}

func (h *ReportsHandler) summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	s, err := h.Reports.Summary(ctx)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}
