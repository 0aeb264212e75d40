package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/auth"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/repository"
)

// AuthService owns the two sign-in paths — Google OAuth and email/password —
// and funnels both through the identity resolver so every session starts
// from a provisioned account.
type AuthService struct {
	users     repository.UserRepository
	resolver  *IdentityResolver
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	resolver *IdentityResolver,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		resolver:  resolver,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginWithGoogle links a verified Google profile to a local account,
// creating one on first sign-in, and returns the user plus a session token.
//
// Provisioning errors are deliberately swallowed: the user authenticated
// fine, and the resolver re-runs on the next sign-in. Only the account
// lookup/create and token signing can fail the login.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile *auth.GoogleUser) (*model.User, string, error) {
	email := normalizeEmail(profile.Email)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrNotFound):
		user = &model.User{
			Name:      profile.Name,
			Email:     email,
			Image:     profile.Picture,
			IsVisible: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			// Another callback for the same account may have just won the
			// insert; fall back to reading their row.
			if !errors.Is(err, apperror.ErrConflict) {
				return nil, "", fmt.Errorf("creating user %s: %w", email, err)
			}
			user, err = s.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, "", fmt.Errorf("creating user %s: %w", email, err)
			}
		} else {
			s.logger.Info("user created via google sign-in",
				slog.String("userID", user.ID),
				slog.String("email", email),
			)
		}
	default:
		return nil, "", fmt.Errorf("looking up %s: %w", email, err)
	}

	if session, err := s.resolver.Resolve(ctx, email, profile.Name); err != nil {
		s.logger.Error("provisioning failed, issuing session anyway",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	} else {
		user.Slug = session.Slug
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register creates an email/password account and signs the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if name == "" {
		return nil, "", apperror.ValidationFailed("name", "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperror.ValidationFailed("email", "a valid email is required")
	}
	if len(password) < 8 {
		return nil, "", apperror.ValidationFailed("password", "password must be at least 8 characters")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsVisible:    true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", email),
	)

	if session, err := s.resolver.Resolve(ctx, email, name); err != nil {
		s.logger.Error("provisioning failed, issuing session anyway",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	} else {
		user.Slug = session.Slug
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies an email/password pair. Every failure mode — unknown
// email, OAuth-only account, wrong password — collapses into the same
// Unauthorized so responses don't reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, "", apperror.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}
	if user.PasswordHash == "" {
		return nil, "", apperror.Unauthorized("invalid email or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, "", apperror.Unauthorized("invalid email or password")
	}

	if session, err := s.resolver.Resolve(ctx, email, user.Name); err != nil {
		s.logger.Error("provisioning failed, issuing session anyway",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	} else {
		user.Slug = session.Slug
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUserByID loads the authenticated user for /api/me.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
