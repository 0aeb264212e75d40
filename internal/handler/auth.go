package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/Gopikrishna-M-A/facfolio/internal/auth"
	"github.com/Gopikrishna-M-A/facfolio/internal/service"
)

// AuthHandler serves both sign-in flows and session management:
//
//	GET  /auth/google/login    → redirect to Google's consent page
//	GET  /auth/google/callback → exchange code, provision, issue JWT
//	POST /auth/register        → email/password account creation
//	POST /auth/login           → email/password sign-in
//	POST /auth/logout          → clear the session cookie
//	GET  /api/me               → the authenticated user's own record
type AuthHandler struct {
	google *auth.GoogleProvider // nil when Google OAuth is not configured
	svc    *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(google *auth.GoogleProvider, svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{google: google, svc: svc, logger: logger}
}

const stateCookieName = "oauth_state"

// HandleGoogleLogin redirects the browser to Google's authorization page.
//
// The random state value round-trips through a short-lived HttpOnly cookie;
// the callback rejects any response whose state doesn't match, so a forged
// callback link can't complete someone else's sign-in.
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeJSON(w, http.StatusNotImplemented, ErrorResponse{
			Error:   "oauth_disabled",
			Message: "Google sign-in is not configured",
		})
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback completes the OAuth flow: verify state, exchange the
// code for a Google profile, link or create the local account, set the
// session cookie, and send the browser home.
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		http.Error(w, "Google sign-in is not configured", http.StatusNotImplemented)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("oauth callback: state check failed")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// State cookies are single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   stateCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("oauth callback: user denied authorization", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	user, token, err := h.svc.LoginWithGoogle(r.Context(), profile)
	if err != nil {
		h.logger.Error("oauth callback: sign-in failed",
			slog.String("email", profile.Email),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}
	h.logger.Info("user authenticated via google",
		slog.String("userID", user.ID),
		slog.String("slug", user.Slug),
	)

	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an email/password account and signs the user in.
//
// HTTP: POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies an email/password pair and signs the user in.
//
// HTTP: POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, user)
}

// HandleLogout clears the session cookie. Sessions are stateless JWTs, so
// there is nothing server-side to revoke; the token simply expires.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the authenticated user's own record.
//
// HTTP: GET /api/me (RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	user, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
