// Package repository declares the storage interfaces consumed by the service
// layer. The sqlite subpackage provides the concrete implementation; services
// only ever see these interfaces, which keeps them testable with in-memory
// mocks and the storage backend swappable.
package repository

import (
	"context"

	"github.com/Gopikrishna-M-A/facfolio/internal/model"
)

// ListOptions narrows collection queries. The zero value means "everything".
type ListOptions struct {
	UserID      string // only items owned by this user
	VisibleOnly bool   // only items with the visibility flag set
}

// UserRepository persists identity records.
//
// Create and Update return apperror.ErrConflict (wrapped) when the email or
// slug collides with an existing row — slug uniqueness is enforced by the
// store, and callers of slug assignment are expected to regenerate and retry
// on conflict.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetBySlug(ctx context.Context, slug string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	// SlugExists is the existence check fed to the slug generator.
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// HomeRepository persists the per-user Home singleton document.
// GetByUser returns apperror.ErrNotFound when the user has no Home yet —
// that is the signal the identity resolver keys its provisioning on.
type HomeRepository interface {
	Create(ctx context.Context, home *model.Home) error
	GetByID(ctx context.Context, id string) (*model.Home, error)
	GetByUser(ctx context.Context, userID string) (*model.Home, error)
	List(ctx context.Context) ([]model.Home, error)
	Update(ctx context.Context, home *model.Home) error
	Delete(ctx context.Context, id string) error
}

// AboutRepository persists the per-user About singleton document.
type AboutRepository interface {
	Create(ctx context.Context, about *model.About) error
	GetByID(ctx context.Context, id string) (*model.About, error)
	GetByUser(ctx context.Context, userID string) (*model.About, error)
	List(ctx context.Context) ([]model.About, error)
	Update(ctx context.Context, about *model.About) error
	Delete(ctx context.Context, id string) error
}

// ResearchRepository persists research entries.
type ResearchRepository interface {
	Create(ctx context.Context, research *model.Research) error
	GetByID(ctx context.Context, id string) (*model.Research, error)
	List(ctx context.Context, opts ListOptions) ([]model.Research, error)
	Update(ctx context.Context, research *model.Research) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists project entries.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, opts ListOptions) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
}

// BlogRepository persists blog entries.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, opts ListOptions) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) error
}
