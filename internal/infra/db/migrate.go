package db

import (
	"database/sql"
	"fmt"
)

// Dialect selects the SQL flavour used for schema and queries.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Postgres keeps timestamps as TIMESTAMPTZ. SQLite has no native time type,
// so timestamps are unix milliseconds in INTEGER columns.
var schemas = map[Dialect][]string{
	DialectPostgres: {
		`
CREATE TABLE IF NOT EXISTS posts (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    excerpt     TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    cover_image TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT 'General',
    author      TEXT NOT NULL DEFAULT 'Guest Writer',
    published   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
)`,
		// ORDER BY created_at DESC, id DESC on every list
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published)`,
	},
	DialectSQLite: {
		`
CREATE TABLE IF NOT EXISTS posts (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    excerpt     TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    cover_image TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT 'General',
    author      TEXT NOT NULL DEFAULT 'Guest Writer',
    published   INTEGER NOT NULL DEFAULT 0,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published)`,
	},
}

// MigrateUp creates the posts schema. Every statement is idempotent.
func MigrateUp(db *sql.DB, dialect Dialect) error {
	stmts, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("migrate: unsupported dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops the posts schema.
// Use with caution: this deletes every stored post.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_posts_published`,
		`DROP INDEX IF EXISTS idx_posts_created_at`,
		`DROP TABLE IF EXISTS posts`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
