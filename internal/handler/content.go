package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/service"
)

// ContentHandler serves the three list-shaped content types — research,
// projects, blogs — under the same route shape:
//
//	GET    /api/research         → list, ?userId= filter
//	POST   /api/research         → create for the caller
//	GET    /api/research/{id}    → single entry
//	PATCH  /api/research/{id}    → edit, owner only
//	DELETE /api/research/{id}    → owner only
type ContentHandler struct {
	research *service.ResearchService
	projects *service.ProjectService
	blogs    *service.BlogService
	logger   *slog.Logger
}

func NewContentHandler(
	research *service.ResearchService,
	projects *service.ProjectService,
	blogs *service.BlogService,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{research: research, projects: projects, blogs: blogs, logger: logger}
}

func (h *ContentHandler) HandleResearchList(w http.ResponseWriter, r *http.Request) {
	items, err := h.research.ListForUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ContentHandler) HandleResearchGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.research.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ContentHandler) HandleResearchCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var research model.Research
	if err := decodeJSON(r, &research); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.research.Create(r.Context(), userID, &research)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) HandleResearchUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var upd service.ResearchUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.research.Update(r.Context(), userID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ContentHandler) HandleResearchDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.research.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "research deleted"})
}

func (h *ContentHandler) HandleProjectList(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.ListForUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ContentHandler) HandleProjectGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ContentHandler) HandleProjectCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var project model.Project
	if err := decodeJSON(r, &project); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.projects.Create(r.Context(), userID, &project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleProjectUpdate replaces the document: the project edit form posts
// everything back, so the ID comes from the URL and the rest from the body.
func (h *ContentHandler) HandleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var project model.Project
	if err := decodeJSON(r, &project); err != nil {
		writeError(w, err)
		return
	}
	project.ID = chi.URLParam(r, "id")

	updated, err := h.projects.Update(r.Context(), userID, &project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContentHandler) HandleProjectDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func (h *ContentHandler) HandleBlogList(w http.ResponseWriter, r *http.Request) {
	items, err := h.blogs.ListForUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ContentHandler) HandleBlogGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ContentHandler) HandleBlogCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var blog model.Blog
	if err := decodeJSON(r, &blog); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.blogs.Create(r.Context(), userID, &blog)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) HandleBlogUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var upd service.BlogUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.blogs.Update(r.Context(), userID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ContentHandler) HandleBlogDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.blogs.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "blog deleted"})
}
