package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gopikrishna-M-A/facfolio/internal/service"
)

// PortfolioHandler serves the public read side: the single aggregate a
// visitor's browser fetches to render one user's entire site.
//
//	GET /api/portfolio/{slug}
type PortfolioHandler struct {
	svc    *service.PortfolioService
	logger *slog.Logger
}

func NewPortfolioHandler(svc *service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, logger: logger}
}

func (h *PortfolioHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	portfolio, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}
