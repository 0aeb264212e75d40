package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/repository"
)

// UserService covers account CRUD outside the sign-in flow: the admin-style
// user listing, profile edits, and slug changes.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create inserts a user record, or returns the existing record when the
// email is already registered. The second return reports whether a new row
// was written. Account linking relies on this being safe to call repeatedly
// with the same email.
func (s *UserService) Create(ctx context.Context, user *model.User) (*model.User, bool, error) {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return nil, false, apperror.ValidationFailed("email", "a valid email is required")
	}
	if user.Name == "" {
		return nil, false, apperror.ValidationFailed("name", "name is required")
	}

	existing, err := s.users.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, err
	}

	if user.Slug == "" {
		slug, err := GenerateSlug(ctx, user.Name, s.users.SlugExists)
		if err != nil {
			return nil, false, fmt.Errorf("generating slug for %s: %w", user.Email, err)
		}
		user.Slug = slug
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the insert race to a concurrent create for the same email.
			existing, lookupErr := s.users.GetByEmail(ctx, user.Email)
			if lookupErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	s.logger.Info("user created", slog.String("userID", user.ID), slog.String("email", user.Email))
	return user, true, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetBySlug(ctx context.Context, slug string) (*model.User, error) {
	return s.users.GetBySlug(ctx, slug)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UserUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged"; email and password are not editable here.
type UserUpdate struct {
	Name           *string      `json:"name"`
	Phone          *string      `json:"phone"`
	CustomImageURL *string      `json:"customImageURL"`
	Slug           *string      `json:"slug"`
	IsVisible      *bool        `json:"isVisible"`
	Theme          *model.Theme `json:"theme"`
}

// Update applies a partial edit to the caller's own record. A requested
// slug is normalized through the same rules as generated ones and must be
// unique; the store's index backstops the check.
func (s *UserService) Update(ctx context.Context, userID string, upd UserUpdate) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, apperror.ValidationFailed("name", "name cannot be empty")
		}
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.CustomImageURL != nil {
		user.CustomImageURL = *upd.CustomImageURL
	}
	if upd.IsVisible != nil {
		user.IsVisible = *upd.IsVisible
	}
	if upd.Theme != nil {
		user.Theme = upd.Theme
	}
	if upd.Slug != nil && *upd.Slug != user.Slug {
		slug := Slugify(*upd.Slug)
		if slug == "" {
			return nil, apperror.ValidationFailed("slug", "slug must contain letters or digits")
		}
		taken, err := s.users.SlugExists(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("checking slug %q: %w", slug, err)
		}
		if taken {
			return nil, apperror.Conflict("slug", slug)
		}
		user.Slug = slug
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.String("userID", id))
	return nil
}
