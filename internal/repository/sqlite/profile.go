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

// Home and About stores. Both are per-user singletons by convention only:
// nothing at the schema level stops a second row for the same user, and two
// concurrent provisioning runs can in fact produce one. The identity
// resolver's existence checks are the only guard.

var (
	_ repository.HomeRepository  = (*HomeDB)(nil)
	_ repository.AboutRepository = (*AboutDB)(nil)
)

// HomeDB implements repository.HomeRepository.
type HomeDB struct {
	conn *sql.DB
}

func (h *HomeDB) Create(ctx context.Context, home *model.Home) error {
	now := time.Now().UTC()
	home.ID = xid.New().String()
	home.CreatedAt = now
	home.UpdatedAt = now

	_, err := h.conn.ExecContext(ctx,
		`INSERT INTO homes (id, user_id, cta_heading, cta_para, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		home.ID, home.UserID, home.CTAHeading, home.CTAPara, home.CreatedAt, home.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting home for user %s: %w", home.UserID, err)
	}
	return nil
}

func (h *HomeDB) GetByID(ctx context.Context, id string) (*model.Home, error) {
	return h.getBy(ctx, "id", id)
}

// GetByUser returns the user's Home document. apperror.ErrNotFound means the
// user has not been provisioned yet. If the documented duplicate race ever
// materializes, the oldest row wins consistently.
func (h *HomeDB) GetByUser(ctx context.Context, userID string) (*model.Home, error) {
	return h.getBy(ctx, "user_id", userID)
}

func (h *HomeDB) getBy(ctx context.Context, column, value string) (*model.Home, error) {
	var home model.Home
	err := h.conn.QueryRowContext(ctx,
		`SELECT id, user_id, cta_heading, cta_para, created_at, updated_at
		 FROM homes WHERE `+column+` = ? ORDER BY created_at ASC LIMIT 1`, value,
	).Scan(&home.ID, &home.UserID, &home.CTAHeading, &home.CTAPara, &home.CreatedAt, &home.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("home", value)
		}
		return nil, fmt.Errorf("sqlite: getting home by %s %q: %w", column, value, err)
	}
	return &home, nil
}

func (h *HomeDB) List(ctx context.Context) ([]model.Home, error) {
	rows, err := h.conn.QueryContext(ctx,
		`SELECT id, user_id, cta_heading, cta_para, created_at, updated_at
		 FROM homes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing homes: %w", err)
	}
	defer rows.Close()

	homes := []model.Home{}
	for rows.Next() {
		var home model.Home
		if err := rows.Scan(&home.ID, &home.UserID, &home.CTAHeading, &home.CTAPara,
			&home.CreatedAt, &home.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning home row: %w", err)
		}
		homes = append(homes, home)
	}
	return homes, rows.Err()
}

func (h *HomeDB) Update(ctx context.Context, home *model.Home) error {
	home.UpdatedAt = time.Now().UTC()

	res, err := h.conn.ExecContext(ctx,
		`UPDATE homes SET cta_heading = ?, cta_para = ?, updated_at = ? WHERE id = ?`,
		home.CTAHeading, home.CTAPara, home.UpdatedAt, home.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating home %s: %w", home.ID, err)
	}
	return requireRow(res, "home", home.ID)
}

func (h *HomeDB) Delete(ctx context.Context, id string) error {
	res, err := h.conn.ExecContext(ctx, `DELETE FROM homes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting home %s: %w", id, err)
	}
	return requireRow(res, "home", id)
}

// AboutDB implements repository.AboutRepository.
type AboutDB struct {
	conn *sql.DB
}

const aboutColumns = `id, user_id, user_tag, quote, linkedin_url, twitter_url,
	github_url, interests, responsibilities, expertise, education, created_at, updated_at`

func (a *AboutDB) Create(ctx context.Context, about *model.About) error {
	now := time.Now().UTC()
	about.ID = xid.New().String()
	about.CreatedAt = now
	about.UpdatedAt = now

	cols, err := aboutJSONColumns(about)
	if err != nil {
		return fmt.Errorf("sqlite: encoding about for user %s: %w", about.UserID, err)
	}

	_, err = a.conn.ExecContext(ctx,
		`INSERT INTO abouts (id, user_id, user_tag, quote, linkedin_url, twitter_url,
			github_url, interests, responsibilities, expertise, education, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		about.ID,
		about.UserID,
		about.UserTag,
		about.Quote,
		about.LinkedinURL,
		about.TwitterURL,
		about.GithubURL,
		cols.interests,
		cols.responsibilities,
		cols.expertise,
		cols.education,
		about.CreatedAt,
		about.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting about for user %s: %w", about.UserID, err)
	}
	return nil
}

func (a *AboutDB) GetByID(ctx context.Context, id string) (*model.About, error) {
	return a.getBy(ctx, "id", id)
}

func (a *AboutDB) GetByUser(ctx context.Context, userID string) (*model.About, error) {
	return a.getBy(ctx, "user_id", userID)
}

func (a *AboutDB) getBy(ctx context.Context, column, value string) (*model.About, error) {
	row := a.conn.QueryRowContext(ctx,
		`SELECT `+aboutColumns+` FROM abouts WHERE `+column+` = ?
		 ORDER BY created_at ASC LIMIT 1`, value)

	about, err := scanAbout(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("about", value)
		}
		return nil, fmt.Errorf("sqlite: getting about by %s %q: %w", column, value, err)
	}
	return about, nil
}

func (a *AboutDB) List(ctx context.Context) ([]model.About, error) {
	rows, err := a.conn.QueryContext(ctx,
		`SELECT `+aboutColumns+` FROM abouts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing abouts: %w", err)
	}
	defer rows.Close()

	abouts := []model.About{}
	for rows.Next() {
		about, err := scanAbout(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning about row: %w", err)
		}
		abouts = append(abouts, *about)
	}
	return abouts, rows.Err()
}

func (a *AboutDB) Update(ctx context.Context, about *model.About) error {
	about.UpdatedAt = time.Now().UTC()

	cols, err := aboutJSONColumns(about)
	if err != nil {
		return fmt.Errorf("sqlite: encoding about %s: %w", about.ID, err)
	}

	res, err := a.conn.ExecContext(ctx,
		`UPDATE abouts SET user_tag = ?, quote = ?, linkedin_url = ?, twitter_url = ?,
			github_url = ?, interests = ?, responsibilities = ?, expertise = ?,
			education = ?, updated_at = ?
		 WHERE id = ?`,
		about.UserTag,
		about.Quote,
		about.LinkedinURL,
		about.TwitterURL,
		about.GithubURL,
		cols.interests,
		cols.responsibilities,
		cols.expertise,
		cols.education,
		about.UpdatedAt,
		about.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating about %s: %w", about.ID, err)
	}
	return requireRow(res, "about", about.ID)
}

func (a *AboutDB) Delete(ctx context.Context, id string) error {
	res, err := a.conn.ExecContext(ctx, `DELETE FROM abouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting about %s: %w", id, err)
	}
	return requireRow(res, "about", id)
}

type aboutJSON struct {
	interests        sql.NullString
	responsibilities sql.NullString
	expertise        sql.NullString
	education        sql.NullString
}

func aboutJSONColumns(about *model.About) (aboutJSON, error) {
	var cols aboutJSON
	var err error
	if cols.interests, err = marshalJSON(about.Interests); err != nil {
		return cols, err
	}
	if cols.responsibilities, err = marshalJSON(about.Responsibilities); err != nil {
		return cols, err
	}
	if cols.expertise, err = marshalJSON(about.Expertise); err != nil {
		return cols, err
	}
	if cols.education, err = marshalJSON(about.Education); err != nil {
		return cols, err
	}
	return cols, nil
}

func scanAbout(s scanner) (*model.About, error) {
	var (
		about model.About
		cols  aboutJSON
	)
	err := s.Scan(
		&about.ID,
		&about.UserID,
		&about.UserTag,
		&about.Quote,
		&about.LinkedinURL,
		&about.TwitterURL,
		&about.GithubURL,
		&cols.interests,
		&cols.responsibilities,
		&cols.expertise,
		&cols.education,
		&about.CreatedAt,
		&about.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(cols.interests, &about.Interests); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.responsibilities, &about.Responsibilities); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.expertise, &about.Expertise); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.education, &about.Education); err != nil {
		return nil, err
	}
	return &about, nil
}

// requireRow converts a zero-rows-affected result into NotFound.
func requireRow(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected for %s %s: %w", resource, id, err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
