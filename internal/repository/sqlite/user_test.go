package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
)

// newTestDB opens an in-memory database that lives for the duration of one
// test. Migrations run inside New, so every test starts from a fresh schema.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, u *UserDB, email, name, slug string) *model.User {
	t.Helper()
	user := &model.User{
		Name:      name,
		Email:     email,
		Slug:      slug,
		IsVisible: true,
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	u := newTestDB(t).Users()

	user := &model.User{
		Name:  "Jane Q. Public",
		Email: "jane@example.com",
		Slug:  "jane-q-public",
		Theme: &model.Theme{FontFamily: "Inter", FontSize: 16},
	}

	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}

	found, err := u.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Email != "jane@example.com" {
		t.Errorf("Email = %q, want %q", found.Email, "jane@example.com")
	}
	if found.Theme == nil || found.Theme.FontFamily != "Inter" {
		t.Errorf("Theme did not round-trip: %+v", found.Theme)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "dup@example.com", "First", "first")

	duplicate := &model.User{Name: "Second", Email: "dup@example.com"}
	err := u.Create(context.Background(), duplicate)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() with duplicate email: error = %v, want ErrConflict", err)
	}
}

func TestUserCreate_DuplicateSlug(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "a@example.com", "Alice", "alice")

	// The store-level unique index is what turns the generator's
	// check-then-insert race into a retryable conflict.
	duplicate := &model.User{Name: "Alice B", Email: "b@example.com", Slug: "alice"}
	err := u.Create(context.Background(), duplicate)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() with duplicate slug: error = %v, want ErrConflict", err)
	}
}

func TestUserCreate_MultipleEmptySlugs(t *testing.T) {
	u := newTestDB(t).Users()

	// Slug is assigned lazily on first sign-in, so several users without one
	// must be able to coexist: empty maps to NULL, outside the unique index.
	createTestUser(t, u, "one@example.com", "One", "")
	createTestUser(t, u, "two@example.com", "Two", "")
}

func TestUserGetByEmail(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "lookup@example.com", "Lookup", "lookup")

	found, err := u.GetByEmail(context.Background(), "lookup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	u := newTestDB(t).Users()

	_, err := u.GetByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetBySlug(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "slug@example.com", "Sluggy", "sluggy")

	found, err := u.GetBySlug(context.Background(), "sluggy")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
}

func TestUserUpdate(t *testing.T) {
	u := newTestDB(t).Users()
	user := createTestUser(t, u, "upd@example.com", "Before", "")

	user.Name = "After"
	user.Slug = "after"
	user.Phone = "+1-555-0100"
	if err := u.Update(context.Background(), user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := u.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Name != "After" || found.Slug != "after" || found.Phone != "+1-555-0100" {
		t.Errorf("Update() not persisted: %+v", found)
	}
}

func TestUserUpdate_SlugConflict(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "holder@example.com", "Holder", "taken")
	user := createTestUser(t, u, "editor@example.com", "Editor", "editor")

	user.Slug = "taken"
	err := u.Update(context.Background(), user)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Update() with taken slug: error = %v, want ErrConflict", err)
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	u := newTestDB(t).Users()

	err := u.Update(context.Background(), &model.User{ID: "missing", Email: "x@example.com"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUserDelete(t *testing.T) {
	u := newTestDB(t).Users()
	user := createTestUser(t, u, "gone@example.com", "Gone", "gone")

	if err := u.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := u.GetByID(context.Background(), user.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() after delete: error = %v, want ErrNotFound", err)
	}
}

func TestSlugExists(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "exists@example.com", "Exists", "exists")

	taken, err := u.SlugExists(context.Background(), "exists")
	if err != nil {
		t.Fatalf("SlugExists() error = %v", err)
	}
	if !taken {
		t.Error("SlugExists(existing) = false, want true")
	}

	taken, err = u.SlugExists(context.Background(), "free")
	if err != nil {
		t.Fatalf("SlugExists() error = %v", err)
	}
	if taken {
		t.Error("SlugExists(free) = true, want false")
	}
}

func TestUserList(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "l1@example.com", "L1", "l1")
	createTestUser(t, u, "l2@example.com", "L2", "l2")

	users, err := u.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("List() returned %d users, want 2", len(users))
	}
}
