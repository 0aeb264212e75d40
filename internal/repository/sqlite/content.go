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

// Research, Project and Blog stores — the repeatable content collections.
// All three share the same query shape; only the column sets differ.

var (
	_ repository.ResearchRepository = (*ResearchDB)(nil)
	_ repository.ProjectRepository  = (*ProjectDB)(nil)
	_ repository.BlogRepository     = (*BlogDB)(nil)
)

// listFilter renders ListOptions into a WHERE clause and its arguments.
func listFilter(opts repository.ListOptions) (string, []any) {
	where := ""
	args := []any{}
	if opts.UserID != "" {
		where = " WHERE user_id = ?"
		args = append(args, opts.UserID)
	}
	if opts.VisibleOnly {
		if where == "" {
			where = " WHERE is_visible = 1"
		} else {
			where += " AND is_visible = 1"
		}
	}
	return where, args
}

// ResearchDB implements repository.ResearchRepository.
type ResearchDB struct {
	conn *sql.DB
}

const researchColumns = `id, user_id, title, subtitle, para, points, is_visible, created_at, updated_at`

func (r *ResearchDB) Create(ctx context.Context, research *model.Research) error {
	now := time.Now().UTC()
	research.ID = xid.New().String()
	research.CreatedAt = now
	research.UpdatedAt = now

	points, err := marshalJSON(research.Points)
	if err != nil {
		return fmt.Errorf("sqlite: encoding research points: %w", err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO research (id, user_id, title, subtitle, para, points, is_visible, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		research.ID,
		research.UserID,
		research.Title,
		research.Subtitle,
		research.Para,
		points,
		research.IsVisible,
		research.CreatedAt,
		research.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting research for user %s: %w", research.UserID, err)
	}
	return nil
}

func (r *ResearchDB) GetByID(ctx context.Context, id string) (*model.Research, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+researchColumns+` FROM research WHERE id = ?`, id)

	research, err := scanResearch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("research", id)
		}
		return nil, fmt.Errorf("sqlite: getting research %s: %w", id, err)
	}
	return research, nil
}

func (r *ResearchDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Research, error) {
	where, args := listFilter(opts)
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+researchColumns+` FROM research`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing research: %w", err)
	}
	defer rows.Close()

	entries := []model.Research{}
	for rows.Next() {
		research, err := scanResearch(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning research row: %w", err)
		}
		entries = append(entries, *research)
	}
	return entries, rows.Err()
}

func (r *ResearchDB) Update(ctx context.Context, research *model.Research) error {
	research.UpdatedAt = time.Now().UTC()

	points, err := marshalJSON(research.Points)
	if err != nil {
		return fmt.Errorf("sqlite: encoding research points: %w", err)
	}

	res, err := r.conn.ExecContext(ctx,
		`UPDATE research SET title = ?, subtitle = ?, para = ?, points = ?,
			is_visible = ?, updated_at = ?
		 WHERE id = ?`,
		research.Title,
		research.Subtitle,
		research.Para,
		points,
		research.IsVisible,
		research.UpdatedAt,
		research.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating research %s: %w", research.ID, err)
	}
	return requireRow(res, "research", research.ID)
}

func (r *ResearchDB) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM research WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting research %s: %w", id, err)
	}
	return requireRow(res, "research", id)
}

func scanResearch(s scanner) (*model.Research, error) {
	var (
		research model.Research
		points   sql.NullString
	)
	err := s.Scan(
		&research.ID,
		&research.UserID,
		&research.Title,
		&research.Subtitle,
		&research.Para,
		&points,
		&research.IsVisible,
		&research.CreatedAt,
		&research.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(points, &research.Points); err != nil {
		return nil, err
	}
	return &research, nil
}

// ProjectDB implements repository.ProjectRepository.
type ProjectDB struct {
	conn *sql.DB
}

const projectColumns = `id, user_id, title, description, link, tags, funding_sources,
	funding_amount, collaborators, start_date, end_date, publications, is_visible,
	created_at, updated_at`

func (p *ProjectDB) Create(ctx context.Context, project *model.Project) error {
	now := time.Now().UTC()
	project.ID = xid.New().String()
	project.CreatedAt = now
	project.UpdatedAt = now

	cols, err := projectJSONColumns(project)
	if err != nil {
		return fmt.Errorf("sqlite: encoding project for user %s: %w", project.UserID, err)
	}

	_, err = p.conn.ExecContext(ctx,
		`INSERT INTO projects (id, user_id, title, description, link, tags, funding_sources,
			funding_amount, collaborators, start_date, end_date, publications, is_visible,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		project.Link,
		cols.tags,
		cols.fundingSources,
		project.FundingAmount,
		cols.collaborators,
		nullableTime(project.StartDate),
		nullableTime(project.EndDate),
		cols.publications,
		project.IsVisible,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project for user %s: %w", project.UserID, err)
	}
	return nil
}

func (p *ProjectDB) GetByID(ctx context.Context, id string) (*model.Project, error) {
	row := p.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}
	return project, nil
}

func (p *ProjectDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Project, error) {
	where, args := listFilter(opts)
	rows, err := p.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (p *ProjectDB) Update(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now().UTC()

	cols, err := projectJSONColumns(project)
	if err != nil {
		return fmt.Errorf("sqlite: encoding project %s: %w", project.ID, err)
	}

	res, err := p.conn.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, link = ?, tags = ?,
			funding_sources = ?, funding_amount = ?, collaborators = ?,
			start_date = ?, end_date = ?, publications = ?, is_visible = ?, updated_at = ?
		 WHERE id = ?`,
		project.Title,
		project.Description,
		project.Link,
		cols.tags,
		cols.fundingSources,
		project.FundingAmount,
		cols.collaborators,
		nullableTime(project.StartDate),
		nullableTime(project.EndDate),
		cols.publications,
		project.IsVisible,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", project.ID, err)
	}
	return requireRow(res, "project", project.ID)
}

func (p *ProjectDB) Delete(ctx context.Context, id string) error {
	res, err := p.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}
	return requireRow(res, "project", id)
}

type projectJSON struct {
	tags           sql.NullString
	fundingSources sql.NullString
	collaborators  sql.NullString
	publications   sql.NullString
}

func projectJSONColumns(project *model.Project) (projectJSON, error) {
	var cols projectJSON
	var err error
	if cols.tags, err = marshalJSON(project.Tags); err != nil {
		return cols, err
	}
	if cols.fundingSources, err = marshalJSON(project.FundingSources); err != nil {
		return cols, err
	}
	if cols.collaborators, err = marshalJSON(project.Collaborators); err != nil {
		return cols, err
	}
	if cols.publications, err = marshalJSON(project.Publications); err != nil {
		return cols, err
	}
	return cols, nil
}

func scanProject(s scanner) (*model.Project, error) {
	var (
		project   model.Project
		cols      projectJSON
		startDate sql.NullTime
		endDate   sql.NullTime
	)
	err := s.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.Link,
		&cols.tags,
		&cols.fundingSources,
		&project.FundingAmount,
		&cols.collaborators,
		&startDate,
		&endDate,
		&cols.publications,
		&project.IsVisible,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		t := startDate.Time
		project.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		project.EndDate = &t
	}
	if err := unmarshalJSON(cols.tags, &project.Tags); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.fundingSources, &project.FundingSources); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.collaborators, &project.Collaborators); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.publications, &project.Publications); err != nil {
		return nil, err
	}
	return &project, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// BlogDB implements repository.BlogRepository.
type BlogDB struct {
	conn *sql.DB
}

const blogColumns = `id, user_id, image_url, title, para, link, is_visible, created_at, updated_at`

func (b *BlogDB) Create(ctx context.Context, blog *model.Blog) error {
	now := time.Now().UTC()
	blog.ID = xid.New().String()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := b.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, user_id, image_url, title, para, link, is_visible, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.UserID,
		blog.ImageURL,
		blog.Title,
		blog.Para,
		blog.Link,
		blog.IsVisible,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting blog for user %s: %w", blog.UserID, err)
	}
	return nil
}

func (b *BlogDB) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog
	err := b.conn.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id,
	).Scan(&blog.ID, &blog.UserID, &blog.ImageURL, &blog.Title, &blog.Para,
		&blog.Link, &blog.IsVisible, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}
	return &blog, nil
}

func (b *BlogDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	where, args := listFilter(opts)
	rows, err := b.conn.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(&blog.ID, &blog.UserID, &blog.ImageURL, &blog.Title,
			&blog.Para, &blog.Link, &blog.IsVisible, &blog.CreatedAt, &blog.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}
	return blogs, rows.Err()
}

func (b *BlogDB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now().UTC()

	res, err := b.conn.ExecContext(ctx,
		`UPDATE blogs SET image_url = ?, title = ?, para = ?, link = ?,
			is_visible = ?, updated_at = ?
		 WHERE id = ?`,
		blog.ImageURL,
		blog.Title,
		blog.Para,
		blog.Link,
		blog.IsVisible,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %s: %w", blog.ID, err)
	}
	return requireRow(res, "blog", blog.ID)
}

func (b *BlogDB) Delete(ctx context.Context, id string) error {
	res, err := b.conn.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}
	return requireRow(res, "blog", id)
}
