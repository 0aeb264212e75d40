package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/repository"
)

// The content services enforce one rule the repositories don't: a user may
// only mutate their own documents. Reads are open — visibility filtering is
// the portfolio service's job.

// HomeService manages the per-user Home singleton. The sign-in flow
// normally creates the document; Create here covers accounts that predate
// provisioning.
type HomeService struct {
	homes  repository.HomeRepository
	logger *slog.Logger
}

func NewHomeService(homes repository.HomeRepository, logger *slog.Logger) *HomeService {
	return &HomeService{homes: homes, logger: logger}
}

func (s *HomeService) GetForUser(ctx context.Context, userID string) (*model.Home, error) {
	return s.homes.GetByUser(ctx, userID)
}

func (s *HomeService) Get(ctx context.Context, id string) (*model.Home, error) {
	return s.homes.GetByID(ctx, id)
}

// List returns all Home documents, or just the given user's when userID is
// set.
func (s *HomeService) List(ctx context.Context, userID string) ([]model.Home, error) {
	if userID != "" {
		home, err := s.homes.GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return []model.Home{}, nil
			}
			return nil, err
		}
		return []model.Home{*home}, nil
	}
	return s.homes.List(ctx)
}

// Create makes a Home document for the caller. Normally the sign-in flow has
// already done this; a second document is rejected rather than racing it.
func (s *HomeService) Create(ctx context.Context, userID string, home *model.Home) (*model.Home, error) {
	if _, err := s.homes.GetByUser(ctx, userID); err == nil {
		return nil, apperror.Conflict("home", userID)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	home.UserID = userID
	if err := s.homes.Create(ctx, home); err != nil {
		return nil, err
	}
	s.logger.Info("home created", slog.String("homeID", home.ID), slog.String("userID", userID))
	return home, nil
}

// HomeUpdate carries the editable Home fields; nil means leave unchanged.
type HomeUpdate struct {
	CTAHeading *string `json:"ctaheading"`
	CTAPara    *string `json:"ctapara"`
}

func (u HomeUpdate) apply(home *model.Home) {
	if u.CTAHeading != nil {
		home.CTAHeading = *u.CTAHeading
	}
	if u.CTAPara != nil {
		home.CTAPara = *u.CTAPara
	}
}

// Update edits the caller's own Home document.
func (s *HomeService) Update(ctx context.Context, userID string, upd HomeUpdate) (*model.Home, error) {
	home, err := s.homes.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	upd.apply(home)
	if err := s.homes.Update(ctx, home); err != nil {
		return nil, err
	}
	return home, nil
}

// UpdateByID edits a specific Home document, which must belong to the caller.
func (s *HomeService) UpdateByID(ctx context.Context, userID, id string, upd HomeUpdate) (*model.Home, error) {
	home, err := s.homes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if home.UserID != userID {
		return nil, apperror.Forbidden("home belongs to another user")
	}
	upd.apply(home)
	if err := s.homes.Update(ctx, home); err != nil {
		return nil, err
	}
	return home, nil
}

func (s *HomeService) Delete(ctx context.Context, userID, id string) error {
	home, err := s.homes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if home.UserID != userID {
		return apperror.Forbidden("home belongs to another user")
	}
	return s.homes.Delete(ctx, id)
}

// AboutService mirrors HomeService for the About singleton.
type AboutService struct {
	abouts repository.AboutRepository
	logger *slog.Logger
}

func NewAboutService(abouts repository.AboutRepository, logger *slog.Logger) *AboutService {
	return &AboutService{abouts: abouts, logger: logger}
}

func (s *AboutService) GetForUser(ctx context.Context, userID string) (*model.About, error) {
	return s.abouts.GetByUser(ctx, userID)
}

func (s *AboutService) Get(ctx context.Context, id string) (*model.About, error) {
	return s.abouts.GetByID(ctx, id)
}

func (s *AboutService) List(ctx context.Context, userID string) ([]model.About, error) {
	if userID != "" {
		about, err := s.abouts.GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return []model.About{}, nil
			}
			return nil, err
		}
		return []model.About{*about}, nil
	}
	return s.abouts.List(ctx)
}

func (s *AboutService) Create(ctx context.Context, userID string, about *model.About) (*model.About, error) {
	if _, err := s.abouts.GetByUser(ctx, userID); err == nil {
		return nil, apperror.Conflict("about", userID)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	about.UserID = userID
	if err := s.abouts.Create(ctx, about); err != nil {
		return nil, err
	}
	s.logger.Info("about created", slog.String("aboutID", about.ID), slog.String("userID", userID))
	return about, nil
}

type AboutUpdate struct {
	UserTag          *string            `json:"userTag"`
	Quote            *string            `json:"quote"`
	LinkedinURL      *string            `json:"linkedinurl"`
	TwitterURL       *string            `json:"twitterurl"`
	GithubURL        *string            `json:"githuburl"`
	Interests        *[]string          `json:"interest"`
	Responsibilities *[]string          `json:"responsibilities"`
	Expertise        *[]string          `json:"expertise"`
	Education        *[]model.Education `json:"education"`
}

func (u AboutUpdate) apply(about *model.About) {
	if u.UserTag != nil {
		about.UserTag = *u.UserTag
	}
	if u.Quote != nil {
		about.Quote = *u.Quote
	}
	if u.LinkedinURL != nil {
		about.LinkedinURL = *u.LinkedinURL
	}
	if u.TwitterURL != nil {
		about.TwitterURL = *u.TwitterURL
	}
	if u.GithubURL != nil {
		about.GithubURL = *u.GithubURL
	}
	if u.Interests != nil {
		about.Interests = *u.Interests
	}
	if u.Responsibilities != nil {
		about.Responsibilities = *u.Responsibilities
	}
	if u.Expertise != nil {
		about.Expertise = *u.Expertise
	}
	if u.Education != nil {
		about.Education = *u.Education
	}
}

// Update edits the caller's own About document.
func (s *AboutService) Update(ctx context.Context, userID string, upd AboutUpdate) (*model.About, error) {
	about, err := s.abouts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	upd.apply(about)
	if err := s.abouts.Update(ctx, about); err != nil {
		return nil, err
	}
	return about, nil
}

// UpdateByID edits a specific About document, which must belong to the
// caller.
func (s *AboutService) UpdateByID(ctx context.Context, userID, id string, upd AboutUpdate) (*model.About, error) {
	about, err := s.abouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if about.UserID != userID {
		return nil, apperror.Forbidden("about belongs to another user")
	}
	upd.apply(about)
	if err := s.abouts.Update(ctx, about); err != nil {
		return nil, err
	}
	return about, nil
}

func (s *AboutService) Delete(ctx context.Context, userID, id string) error {
	about, err := s.abouts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if about.UserID != userID {
		return apperror.Forbidden("about belongs to another user")
	}
	return s.abouts.Delete(ctx, id)
}

// ResearchService manages research entries. Unlike Home and About, these are
// plain lists: users create and delete them freely.
type ResearchService struct {
	research repository.ResearchRepository
	logger   *slog.Logger
}

func NewResearchService(research repository.ResearchRepository, logger *slog.Logger) *ResearchService {
	return &ResearchService{research: research, logger: logger}
}

func (s *ResearchService) Create(ctx context.Context, userID string, research *model.Research) (*model.Research, error) {
	if research.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	research.UserID = userID
	if err := s.research.Create(ctx, research); err != nil {
		return nil, err
	}
	s.logger.Info("research created",
		slog.String("researchID", research.ID),
		slog.String("userID", userID),
	)
	return research, nil
}

func (s *ResearchService) ListForUser(ctx context.Context, userID string) ([]model.Research, error) {
	return s.research.List(ctx, repository.ListOptions{UserID: userID})
}

func (s *ResearchService) Get(ctx context.Context, id string) (*model.Research, error) {
	return s.research.GetByID(ctx, id)
}

type ResearchUpdate struct {
	Title     *string   `json:"title"`
	Subtitle  *string   `json:"subtitle"`
	Para      *string   `json:"para"`
	Points    *[]string `json:"points"`
	IsVisible *bool     `json:"isVisible"`
}

func (s *ResearchService) Update(ctx context.Context, userID, id string, upd ResearchUpdate) (*model.Research, error) {
	research, err := s.research.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if research.UserID != userID {
		return nil, apperror.Forbidden("research belongs to another user")
	}
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be empty")
		}
		research.Title = *upd.Title
	}
	if upd.Subtitle != nil {
		research.Subtitle = *upd.Subtitle
	}
	if upd.Para != nil {
		research.Para = *upd.Para
	}
	if upd.Points != nil {
		research.Points = *upd.Points
	}
	if upd.IsVisible != nil {
		research.IsVisible = *upd.IsVisible
	}
	if err := s.research.Update(ctx, research); err != nil {
		return nil, err
	}
	return research, nil
}

func (s *ResearchService) Delete(ctx context.Context, userID, id string) error {
	research, err := s.research.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if research.UserID != userID {
		return apperror.Forbidden("research belongs to another user")
	}
	return s.research.Delete(ctx, id)
}

// ProjectService manages project entries.
type ProjectService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewProjectService(projects repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, userID string, project *model.Project) (*model.Project, error) {
	if project.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	project.UserID = userID
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("project created",
		slog.String("projectID", project.ID),
		slog.String("userID", userID),
	)
	return project, nil
}

func (s *ProjectService) ListForUser(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projects.List(ctx, repository.ListOptions{UserID: userID})
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// Update replaces the project wholesale: the edit form posts the full
// document, so partial-field pointers buy nothing here.
func (s *ProjectService) Update(ctx context.Context, userID string, project *model.Project) (*model.Project, error) {
	existing, err := s.projects.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperror.Forbidden("project belongs to another user")
	}
	if project.Title == "" {
		return nil, apperror.ValidationFailed("title", "title cannot be empty")
	}
	project.UserID = existing.UserID
	project.CreatedAt = existing.CreatedAt
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return apperror.Forbidden("project belongs to another user")
	}
	return s.projects.Delete(ctx, id)
}

// BlogService manages blog entries.
type BlogService struct {
	blogs  repository.BlogRepository
	logger *slog.Logger
}

func NewBlogService(blogs repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{blogs: blogs, logger: logger}
}

func (s *BlogService) Create(ctx context.Context, userID string, blog *model.Blog) (*model.Blog, error) {
	if blog.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	blog.UserID = userID
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	s.logger.Info("blog created",
		slog.String("blogID", blog.ID),
		slog.String("userID", userID),
	)
	return blog, nil
}

func (s *BlogService) ListForUser(ctx context.Context, userID string) ([]model.Blog, error) {
	return s.blogs.List(ctx, repository.ListOptions{UserID: userID})
}

func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

type BlogUpdate struct {
	ImageURL  *string `json:"imageUrl"`
	Title     *string `json:"title"`
	Para      *string `json:"para"`
	Link      *string `json:"link"`
	IsVisible *bool   `json:"isVisible"`
}

func (s *BlogService) Update(ctx context.Context, userID, id string, upd BlogUpdate) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.UserID != userID {
		return nil, apperror.Forbidden("blog belongs to another user")
	}
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be empty")
		}
		blog.Title = *upd.Title
	}
	if upd.ImageURL != nil {
		blog.ImageURL = *upd.ImageURL
	}
	if upd.Para != nil {
		blog.Para = *upd.Para
	}
	if upd.Link != nil {
		blog.Link = *upd.Link
	}
	if upd.IsVisible != nil {
		blog.IsVisible = *upd.IsVisible
	}
	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, userID, id string) error {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.UserID != userID {
		return apperror.Forbidden("blog belongs to another user")
	}
	return s.blogs.Delete(ctx, id)
}
