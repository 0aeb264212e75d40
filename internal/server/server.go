// Package server is the composition root: it wires config, storage,
// services, handlers, and routes, and owns the HTTP server lifecycle.
//
// Dependencies flow one way. The server creates the sqlite.DB, hands
// repository interfaces to services, services to handlers, and handlers to
// routes. Handlers never touch the database; services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Gopikrishna-M-A/facfolio/internal/auth"
	"github.com/Gopikrishna-M-A/facfolio/internal/config"
	"github.com/Gopikrishna-M-A/facfolio/internal/handler"
	"github.com/Gopikrishna-M-A/facfolio/internal/middleware"
	sqliteRepo "github.com/Gopikrishna-M-A/facfolio/internal/repository/sqlite"
	"github.com/Gopikrishna-M-A/facfolio/internal/service"
)

// Server owns the router and the resources that must be released on
// shutdown, chiefly the database connection.
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain and registers all routes.
//
// Without JWT_SECRET the server still starts, but only the public read
// routes are registered — useful for serving existing portfolios while the
// editing API is down for secret rotation.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	users := s.db.Users()
	homes := s.db.Homes()
	abouts := s.db.Abouts()
	research := s.db.Research()
	projects := s.db.Projects()
	blogs := s.db.Blogs()

	resolver := service.NewIdentityResolver(users, homes, abouts, s.logger)
	userService := service.NewUserService(users, s.logger)
	homeService := service.NewHomeService(homes, s.logger)
	aboutService := service.NewAboutService(abouts, s.logger)
	researchService := service.NewResearchService(research, s.logger)
	projectService := service.NewProjectService(projects, s.logger)
	blogService := service.NewBlogService(blogs, s.logger)
	portfolioService := service.NewPortfolioService(users, homes, abouts, research, projects, blogs, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	profileHandler := handler.NewProfileHandler(homeService, aboutService, s.logger)
	contentHandler := handler.NewContentHandler(researchService, projectService, blogService, s.logger)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService, s.logger)

	if s.cfg.JWTSecret == "" {
		s.logger.Warn("JWT_SECRET not set, starting with public read routes only")
		s.router.Route("/api", func(r chi.Router) {
			s.publicRoutes(r, userHandler, profileHandler, contentHandler, portfolioHandler)
		})
		return nil
	}

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return err
	}

	var google *auth.GoogleProvider
	if s.cfg.OAuthEnabled() {
		google = auth.NewGoogleProvider(s.cfg.GoogleClientID, s.cfg.GoogleClientSecret, s.cfg.GoogleCallbackURL)
	} else {
		s.logger.Warn("Google OAuth not configured, only email/password sign-in available")
	}

	authService := service.NewAuthService(users, resolver, tokens, auth.NewPasswordService(), s.logger)
	authHandler := handler.NewAuthHandler(google, authService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.HandleGoogleLogin)
		r.Get("/google/callback", authHandler.HandleGoogleCallback)
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		s.publicRoutes(r, userHandler, profileHandler, contentHandler, portfolioHandler)

		// Mutations require a session.
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

	return nil
}

// publicRoutes registers the unauthenticated read side: the portfolio
// aggregate plus plain GETs the frontend uses while rendering.
func (s *Server) publicRoutes(
	r chi.Router,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	contentHandler *handler.ContentHandler,
	portfolioHandler *handler.PortfolioHandler,
) {
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
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database. Closing the DB last flushes the WAL and
// releases the file lock.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("baseURL", s.cfg.BaseURL),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Router exposes the configured routes for handler-level tests.
func (s *Server) Router() http.Handler {
	return s.router
}
