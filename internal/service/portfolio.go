package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/repository"
)

// PortfolioService assembles the public read side: everything a visitor's
// browser needs to render one user's site, fetched by slug in a single call.
type PortfolioService struct {
	users    repository.UserRepository
	homes    repository.HomeRepository
	abouts   repository.AboutRepository
	research repository.ResearchRepository
	projects repository.ProjectRepository
	blogs    repository.BlogRepository
	logger   *slog.Logger
}

func NewPortfolioService(
	users repository.UserRepository,
	homes repository.HomeRepository,
	abouts repository.AboutRepository,
	research repository.ResearchRepository,
	projects repository.ProjectRepository,
	blogs repository.BlogRepository,
	logger *slog.Logger,
) *PortfolioService {
	return &PortfolioService{
		users:    users,
		homes:    homes,
		abouts:   abouts,
		research: research,
		projects: projects,
		blogs:    blogs,
		logger:   logger,
	}
}

// GetBySlug returns the full public portfolio for a slug. An unknown slug
// or a user who opted out of visibility is NotFound either way, so hidden
// sites are indistinguishable from absent ones.
//
// A missing Home or About — possible when provisioning failed partway and
// the user hasn't signed in since — leaves that section nil rather than
// failing the page. Content lists carry only visible entries.
func (s *PortfolioService) GetBySlug(ctx context.Context, slug string) (*model.Portfolio, error) {
	user, err := s.users.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !user.IsVisible {
		return nil, apperror.NotFound("portfolio", slug)
	}

	p := &model.Portfolio{User: user}

	p.Home, err = s.homes.GetByUser(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("loading home for %s: %w", slug, err)
		}
		s.logger.Warn("portfolio missing home document", slog.String("userID", user.ID))
		p.Home = nil
	}

	p.About, err = s.abouts.GetByUser(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("loading about for %s: %w", slug, err)
		}
		s.logger.Warn("portfolio missing about document", slog.String("userID", user.ID))
		p.About = nil
	}

	visible := repository.ListOptions{UserID: user.ID, VisibleOnly: true}
	if p.Research, err = s.research.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading research for %s: %w", slug, err)
	}
	if p.Projects, err = s.projects.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading projects for %s: %w", slug, err)
	}
	if p.Blogs, err = s.blogs.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading blogs for %s: %w", slug, err)
	}

	return p, nil
}
