package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/auth"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/service"
)

// ProfileHandler serves the Home and About singleton documents. Both follow
// the same route shape:
//
//	GET    /api/home         → list, or the owner's document via ?userId=
//	POST   /api/home         → create for the caller (usually sign-in did this)
//	GET    /api/home/{id}    → single document
//	PATCH  /api/home/{id}    → edit, owner only
//	DELETE /api/home/{id}    → owner only
//
// and the same for /api/about.
type ProfileHandler struct {
	homes  *service.HomeService
	abouts *service.AboutService
	logger *slog.Logger
}

func NewProfileHandler(homes *service.HomeService, abouts *service.AboutService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{homes: homes, abouts: abouts, logger: logger}
}

// callerID pulls the authenticated user out of the context, writing a 401
// when the middleware didn't put one there.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return "", false
	}
	return userID, true
}

func (h *ProfileHandler) HandleHomeList(w http.ResponseWriter, r *http.Request) {
	homes, err := h.homes.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, homes)
}

func (h *ProfileHandler) HandleHomeGet(w http.ResponseWriter, r *http.Request) {
	home, err := h.homes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (h *ProfileHandler) HandleHomeCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var home model.Home
	if err := decodeJSON(r, &home); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.homes.Create(r.Context(), userID, &home)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) HandleHomeUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var upd service.HomeUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	home, err := h.homes.UpdateByID(r.Context(), userID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (h *ProfileHandler) HandleHomeDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.homes.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "home deleted"})
}

func (h *ProfileHandler) HandleAboutList(w http.ResponseWriter, r *http.Request) {
	abouts, err := h.abouts.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, abouts)
}

func (h *ProfileHandler) HandleAboutGet(w http.ResponseWriter, r *http.Request) {
	about, err := h.abouts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, about)
}

func (h *ProfileHandler) HandleAboutCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var about model.About
	if err := decodeJSON(r, &about); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.abouts.Create(r.Context(), userID, &about)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) HandleAboutUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var upd service.AboutUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	about, err := h.abouts.UpdateByID(r.Context(), userID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, about)
}

func (h *ProfileHandler) HandleAboutDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.abouts.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "about deleted"})
}
