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

// slugWriteRetries bounds how often a slug write is retried after losing the
// check-then-insert race to a concurrent sign-in. Collisions need two users
// generating the same candidate in the same instant, so one retry almost
// always suffices; exhausting three means something is systemically wrong.
const slugWriteRetries = 3

// Session is what the identity resolver hands back for session enrichment:
// the internal user ID and the public slug, enough to build the user's
// portfolio URL.
type Session struct {
	UserID string `json:"userId"`
	Slug   string `json:"slug"`
}

// IdentityResolver guarantees that an authenticated principal's user record
// is fully provisioned: it has a slug, a Home document, and an About
// document. It runs on every session establishment and is idempotent — each
// step checks before it writes, so a run that failed halfway is completed by
// the next sign-in.
//
// The existence-check-then-create steps are not atomic. Two simultaneous
// sign-ins for the same user can each observe "no Home yet" and both create
// one; nothing here or in the schema prevents that. Readers cope by treating
// the oldest row as canonical (see HomeDB.GetByUser). The slug has no such
// tolerance — two users sharing a URL is broken — so slug uniqueness is
// enforced by the store and conflicts are retried here.
type IdentityResolver struct {
	users  repository.UserRepository
	homes  repository.HomeRepository
	abouts repository.AboutRepository
	logger *slog.Logger
}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver(
	users repository.UserRepository,
	homes repository.HomeRepository,
	abouts repository.AboutRepository,
	logger *slog.Logger,
) *IdentityResolver {
	return &IdentityResolver{
		users:  users,
		homes:  homes,
		abouts: abouts,
		logger: logger,
	}
}

// Resolve looks up the principal by email, provisions whatever is missing
// (slug, Home, About), and returns the session enrichment.
//
// A missing user record is the account-linking flow's problem, not ours: it
// creates the record before calling Resolve. The NotFound simply propagates.
//
// Callers on the login path must treat a Resolve error as non-fatal — log it
// and issue the session anyway. Provisioning is retried on the next sign-in;
// failing authentication over it would lock users out whenever one content
// table hiccups.
func (r *IdentityResolver) Resolve(ctx context.Context, email, displayName string) (*Session, error) {
	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolving identity for %s: %w", email, err)
	}

	if user.Slug == "" {
		if err := r.ensureSlug(ctx, user, displayName); err != nil {
			return nil, fmt.Errorf("assigning slug for %s: %w", email, err)
		}
		r.logger.Info("slug assigned",
			slog.String("userID", user.ID),
			slog.String("slug", user.Slug),
		)
	}

	if err := r.ensureHome(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("provisioning home for %s: %w", email, err)
	}
	if err := r.ensureAbout(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("provisioning about for %s: %w", email, err)
	}

	return &Session{UserID: user.ID, Slug: user.Slug}, nil
}

// ensureSlug generates and persists a slug for a user that has none. When
// the store reports a uniqueness conflict — a concurrent caller claimed the
// same candidate between our check and our write — generation reruns against
// the now-updated taken set, a bounded number of times.
func (r *IdentityResolver) ensureSlug(ctx context.Context, user *model.User, displayName string) error {
	name := displayName
	if name == "" {
		name = user.Name
	}

	var lastErr error
	for attempt := 0; attempt < slugWriteRetries; attempt++ {
		slug, err := GenerateSlug(ctx, name, r.users.SlugExists)
		if err != nil {
			return err
		}

		user.Slug = slug
		err = r.users.Update(ctx, user)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperror.ErrConflict) {
			user.Slug = ""
			return err
		}

		r.logger.Warn("slug write lost a race, regenerating",
			slog.String("userID", user.ID),
			slog.String("slug", slug),
		)
		user.Slug = ""
		lastErr = err
	}

	return fmt.Errorf("slug conflicts persisted after %d retries: %w", slugWriteRetries, lastErr)
}

func (r *IdentityResolver) ensureHome(ctx context.Context, userID string) error {
	_, err := r.homes.GetByUser(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	if err := r.homes.Create(ctx, &model.Home{UserID: userID}); err != nil {
		return err
	}
	r.logger.Info("home document created", slog.String("userID", userID))
	return nil
}

func (r *IdentityResolver) ensureAbout(ctx context.Context, userID string) error {
	_, err := r.abouts.GetByUser(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	if err := r.abouts.Create(ctx, &model.About{UserID: userID}); err != nil {
		return err
	}
	r.logger.Info("about document created", slog.String("userID", userID))
	return nil
}
