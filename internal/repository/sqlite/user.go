package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB implements repository.UserRepository on the shared pool.
type UserDB struct {
	conn *sql.DB
}

const userColumns = `id, name, email, phone, image, custom_image_url, slug,
	is_visible, password_hash, theme, created_at, updated_at`

// Create inserts a new user. The ID and timestamps are generated here; the
// caller's struct is updated in place. Email and slug collisions come back
// as apperror.ErrConflict — the slug case is exactly the race the generator's
// check-then-insert pattern cannot rule out, and callers retry it.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	theme, err := marshalJSON(user.Theme)
	if err != nil {
		return fmt.Errorf("sqlite: encoding theme for user %s: %w", user.Email, err)
	}

	_, err = u.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, image, custom_image_url, slug,
			is_visible, password_hash, theme, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.Image,
		user.CustomImageURL,
		nullable(user.Slug),
		user.IsVisible,
		user.PasswordHash,
		theme,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return translateUnique(err, "user", user.Email)
	}
	return nil
}

// GetByID retrieves a user by internal ID.
func (u *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email — the lookup the identity resolver
// starts from on every session establishment.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.getBy(ctx, "email", email)
}

// GetBySlug retrieves a user by public slug.
func (u *UserDB) GetBySlug(ctx context.Context, slug string) (*model.User, error) {
	return u.getBy(ctx, "slug", slug)
}

func (u *UserDB) getBy(ctx context.Context, column, value string) (*model.User, error) {
	row := u.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", value)
		}
		return nil, fmt.Errorf("sqlite: getting user by %s %q: %w", column, value, err)
	}
	return user, nil
}

// List returns all users, newest first.
func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Update rewrites all mutable fields of the user row. Slug collisions surface
// as apperror.ErrConflict so profile edits that change the slug can reject it.
func (u *UserDB) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()

	theme, err := marshalJSON(user.Theme)
	if err != nil {
		return fmt.Errorf("sqlite: encoding theme for user %s: %w", user.ID, err)
	}

	res, err := u.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ?, image = ?,
			custom_image_url = ?, slug = ?, is_visible = ?, password_hash = ?,
			theme = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name,
		user.Email,
		user.Phone,
		user.Image,
		user.CustomImageURL,
		nullable(user.Slug),
		user.IsVisible,
		user.PasswordHash,
		theme,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return translateUnique(err, "slug", user.Slug)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}
	if n == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

// Delete removes the user row. Content rows are left in place — there is no
// cascading delete, matching the rest of the system's expectations about
// dangling references.
func (u *UserDB) Delete(ctx context.Context, id string) error {
	res, err := u.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

// SlugExists reports whether any user already holds the candidate slug.
// This is the existence check handed to the slug generator. It is read-only:
// a "false" answer here can still lose the race to a concurrent insert, which
// is why Create/Update report conflicts.
func (u *UserDB) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := u.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking slug %q: %w", slug, err)
	}
	return n > 0, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		user  model.User
		slug  sql.NullString
		theme sql.NullString
	)
	err := s.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Image,
		&user.CustomImageURL,
		&slug,
		&user.IsVisible,
		&user.PasswordHash,
		&theme,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Slug = slug.String
	if theme.Valid {
		user.Theme = &model.Theme{}
		if err := unmarshalJSON(theme, user.Theme); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// nullable maps "" to SQL NULL. The partial unique index on users.slug only
// covers non-NULL values, so users without a slug yet don't collide.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
