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

// UserHandler serves account records.
//
//	GET    /api/users        → list, or lookup via ?email= / ?slug=
//	POST   /api/users        → create (idempotent on email)
//	GET    /api/users/{id}   → single record
//	PATCH  /api/users/{id}   → partial edit, own record only
//	DELETE /api/users/{id}   → own record only
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if email := q.Get("email"); email != "" {
		user, err := h.svc.GetByEmail(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
		return
	}
	if slug := q.Get("slug"); slug != "" {
		user, err := h.svc.GetBySlug(r.Context(), slug)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
		return
	}

	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleCreate inserts a user, or returns the existing record with 200 when
// the email is already registered. Account-linking callers rely on the
// repeat-POST-same-email case not being an error.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, err)
		return
	}

	created, isNew, err := h.svc.Create(r.Context(), &user)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	writeJSON(w, status, created)
}

func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, id := requireOwnRecord(w, r)
	if userID == "" {
		return
	}

	var upd service.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, id := requireOwnRecord(w, r)
	if userID == "" {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("account deleted", slog.String("userID", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// requireOwnRecord checks that the authenticated caller is addressing their
// own record. Returns ("", "") after writing the error response otherwise.
func requireOwnRecord(w http.ResponseWriter, r *http.Request) (userID, id string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return "", ""
	}
	id = chi.URLParam(r, "id")
	if id != userID {
		writeError(w, apperror.Forbidden("cannot modify another user's account"))
		return "", ""
	}
	return userID, id
}
