// Package sqlite implements the repository interfaces on SQLite.
//
// modernc.org/sqlite is a pure-Go translation of SQLite — no CGo, so the
// binary cross-compiles anywhere Go runs. The database is a single file
// (or ":memory:" in tests), which fits a single-server deployment of a
// portfolio builder and keeps tests self-contained.
//
// Nested list fields (education, publications, tags, ...) are stored as JSON
// text columns. They are only ever read and written whole, as part of the
// document that owns them, so there is nothing to gain from normalizing them
// into rows.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
)

// DB owns the connection pool and hands out per-entity stores that share it.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies pragmas, and runs migrations.
//
// WAL mode lets reads proceed while a write is in flight — without it SQLite
// locks the whole file per write, which stalls a web server. Foreign keys are
// off by default in SQLite and must be switched on per connection.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Per-entity store accessors. Each store shares the pool; they exist so each
// entity's SQL lives in its own file with its own method set.

func (db *DB) Users() *UserDB        { return &UserDB{conn: db.conn} }
func (db *DB) Homes() *HomeDB        { return &HomeDB{conn: db.conn} }
func (db *DB) Abouts() *AboutDB      { return &AboutDB{conn: db.conn} }
func (db *DB) Research() *ResearchDB { return &ResearchDB{conn: db.conn} }
func (db *DB) Projects() *ProjectDB  { return &ProjectDB{conn: db.conn} }
func (db *DB) Blogs() *BlogDB        { return &BlogDB{conn: db.conn} }

// migrate creates all tables. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it runs unconditionally on every startup.
//
// The UNIQUE index on users.slug is load-bearing: slug generation is
// check-then-insert and two concurrent sign-ins can pick the same candidate.
// The index turns that race into a constraint error the caller retries,
// instead of two users silently sharing a URL. Home/About deliberately have
// no such constraint on user_id — the singleton rule is application-level.
func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL DEFAULT '',
			email            TEXT NOT NULL UNIQUE,
			phone            TEXT NOT NULL DEFAULT '',
			image            TEXT NOT NULL DEFAULT '',
			custom_image_url TEXT NOT NULL DEFAULT '',
			slug             TEXT,
			is_visible       INTEGER NOT NULL DEFAULT 1,
			password_hash    TEXT NOT NULL DEFAULT '',
			theme            TEXT,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_slug ON users(slug) WHERE slug IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS homes (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id),
			cta_heading TEXT NOT NULL DEFAULT '',
			cta_para    TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_homes_user_id ON homes(user_id)`,
		`CREATE TABLE IF NOT EXISTS abouts (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL REFERENCES users(id),
			user_tag         TEXT NOT NULL DEFAULT '',
			quote            TEXT NOT NULL DEFAULT '',
			linkedin_url     TEXT NOT NULL DEFAULT '',
			twitter_url      TEXT NOT NULL DEFAULT '',
			github_url       TEXT NOT NULL DEFAULT '',
			interests        TEXT,
			responsibilities TEXT,
			expertise        TEXT,
			education        TEXT,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_abouts_user_id ON abouts(user_id)`,
		`CREATE TABLE IF NOT EXISTS research (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL,
			subtitle   TEXT NOT NULL DEFAULT '',
			para       TEXT NOT NULL DEFAULT '',
			points     TEXT,
			is_visible INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_research_user_id ON research(user_id)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL REFERENCES users(id),
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			link            TEXT NOT NULL DEFAULT '',
			tags            TEXT,
			funding_sources TEXT,
			funding_amount  REAL NOT NULL DEFAULT 0,
			collaborators   TEXT,
			start_date      DATETIME,
			end_date        DATETIME,
			publications    TEXT,
			is_visible      INTEGER NOT NULL DEFAULT 1,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			image_url  TEXT NOT NULL DEFAULT '',
			title      TEXT NOT NULL,
			para       TEXT NOT NULL DEFAULT '',
			link       TEXT NOT NULL DEFAULT '',
			is_visible INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

// translateUnique maps SQLite UNIQUE violations to the domain conflict error
// so services can errors.Is on apperror.ErrConflict without importing this
// package. Any other error passes through untouched.
func translateUnique(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return apperror.Conflict(resource, key)
	}
	return err
}

// marshalJSON encodes a list-ish field for storage. nil and empty collapse to
// SQL NULL so the column stays readable in the sqlite shell.
func marshalJSON(v any) (sql.NullString, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding json column: %w", err)
	}
	s := string(data)
	if s == "null" || s == "[]" || s == "{}" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: s, Valid: true}, nil
}

// unmarshalJSON decodes a JSON column into out, leaving out untouched when
// the column is NULL.
func unmarshalJSON(col sql.NullString, out any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), out); err != nil {
		return fmt.Errorf("decoding json column: %w", err)
	}
	return nil
}
