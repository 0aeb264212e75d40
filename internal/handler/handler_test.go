package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Gopikrishna-M-A/facfolio/internal/auth"
	sqliteRepo "github.com/Gopikrishna-M-A/facfolio/internal/repository/sqlite"
	"github.com/Gopikrishna-M-A/facfolio/internal/service"
)

// testEnv assembles the real stack — in-memory sqlite, services, handlers,
// chi routes — without the outer server lifecycle. Requests go through the
// same RequireAuth middleware as production.
type testEnv struct {
	router *chi.Mux
	db     *sqliteRepo.DB
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceForTest(4)

	users := db.Users()
	homes := db.Homes()
	abouts := db.Abouts()
	research := db.Research()
	projects := db.Projects()
	blogs := db.Blogs()

	resolver := service.NewIdentityResolver(users, homes, abouts, logger)
	authService := service.NewAuthService(users, resolver, tokens, passwords, logger)
	userService := service.NewUserService(users, logger)
	homeService := service.NewHomeService(homes, logger)
	aboutService := service.NewAboutService(abouts, logger)
	researchService := service.NewResearchService(research, logger)
	projectService := service.NewProjectService(projects, logger)
	blogService := service.NewBlogService(blogs, logger)
	portfolioService := service.NewPortfolioService(users, homes, abouts, research, projects, blogs, logger)

	authHandler := NewAuthHandler(nil, authService, logger)
	userHandler := NewUserHandler(userService, logger)
	profileHandler := NewProfileHandler(homeService, aboutService, logger)
	contentHandler := NewContentHandler(researchService, projectService, blogService, logger)
	portfolioHandler := NewPortfolioHandler(portfolioService, logger)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.HandleGoogleLogin)
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
	})
	router.Route("/api", func(r chi.Router) {
		r.Get("/portfolio/{slug}", portfolioHandler.HandleGetBySlug)
		r.Get("/users", userHandler.HandleList)
		r.Get("/users/{id}", userHandler.HandleGet)
		r.Get("/home", profileHandler.HandleHomeList)
		r.Get("/home/{id}", profileHandler.HandleHomeGet)
		r.Get("/about", profileHandler.HandleAboutList)
		r.Get("/about/{id}", profileHandler.HandleAboutGet)
		r.Get("/research", contentHandler.HandleResearchList)
		r.Get("/research/{id}", contentHandler.HandleResearchGet)
		r.Get("/projects", contentHandler.HandleProjectList)
		r.Get("/projects/{id}", contentHandler.HandleProjectGet)
		r.Get("/blogs", contentHandler.HandleBlogList)
		r.Get("/blogs/{id}", contentHandler.HandleBlogGet)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Post("/users", userHandler.HandleCreate)
			r.Patch("/users/{id}", userHandler.HandleUpdate)
			r.Delete("/users/{id}", userHandler.HandleDelete)
			r.Post("/home", profileHandler.HandleHomeCreate)
			r.Patch("/home/{id}", profileHandler.HandleHomeUpdate)
			r.Delete("/home/{id}", profileHandler.HandleHomeDelete)
			r.Post("/about", profileHandler.HandleAboutCreate)
			r.Patch("/about/{id}", profileHandler.HandleAboutUpdate)
			r.Delete("/about/{id}", profileHandler.HandleAboutDelete)
			r.Post("/research", contentHandler.HandleResearchCreate)
			r.Patch("/research/{id}", contentHandler.HandleResearchUpdate)
			r.Delete("/research/{id}", contentHandler.HandleResearchDelete)
			r.Post("/projects", contentHandler.HandleProjectCreate)
			r.Patch("/projects/{id}", contentHandler.HandleProjectUpdate)
			r.Delete("/projects/{id}", contentHandler.HandleProjectDelete)
			r.Post("/blogs", contentHandler.HandleBlogCreate)
			r.Patch("/blogs/{id}", contentHandler.HandleBlogUpdate)
			r.Delete("/blogs/{id}", contentHandler.HandleBlogDelete)
		})
	})

	return &testEnv{router: router, db: db, tokens: tokens}
}

// do runs a request through the router. A non-nil body is JSON-encoded;
// cookies (e.g. the session) are attached as-is.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns the session
// cookie the response set.
func (e *testEnv) register(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("register response did not set a session cookie")
	return nil
}

// decode unmarshals a JSON response body into dst.
func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
