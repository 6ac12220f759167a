// Package sqlite implements the post repository on an embedded SQLite file
// through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"inkwell/internal/domain/entity"
	"inkwell/internal/repository"
)

const postColumns = `id, title, excerpt, content, cover_image, category, author, published, created_at, updated_at`

type PostRepo struct {
	db       *sql.DB
	settings repository.Settings
}

// NewPostRepo wraps an open database. The caller keeps ownership of db.
func NewPostRepo(db *sql.DB, opts ...repository.Option) *PostRepo {
	return &PostRepo{db: db, settings: repository.NewSettings(opts...)}
}

func millis(t time.Time) int64 { return entity.Timestamp(t).UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*entity.Post, error) {
	var (
		p                  entity.Post
		createdAt, updated int64
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.Category, &p.Author, &p.Published, &createdAt, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}

func (repo *PostRepo) List(ctx context.Context) ([]*entity.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, repository.StorageError("List", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.Post, 0, 32)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, repository.StorageError("List: Scan", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.StorageError("List", err)
	}
	return posts, nil
}

func (repo *PostRepo) Get(ctx context.Context, id string) (*entity.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = ? LIMIT 1`
	p, err := scanPost(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.StorageError("Get", err)
	}
	return p, nil
}

func (repo *PostRepo) Insert(ctx context.Context, fields repository.PostFields) (*entity.Post, error) {
	now := entity.Timestamp(repo.settings.Now())
	p := &entity.Post{
		ID:         repo.settings.NewID(),
		Title:      fields.Title,
		Excerpt:    fields.Excerpt,
		Content:    fields.Content,
		CoverImage: fields.CoverImage,
		Category:   fields.Category,
		Author:     fields.Author,
		Published:  fields.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	const query = `INSERT INTO posts (` + postColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := repo.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Excerpt, p.Content, p.CoverImage,
		p.Category, p.Author, p.Published, now.UnixMilli(), now.UnixMilli()); err != nil {
		return nil, repository.StorageError("Insert", err)
	}
	return p, nil
}

func (repo *PostRepo) Update(ctx context.Context, id string, patch repository.PostPatch) (*entity.Post, error) {
	const query = `
UPDATE posts SET
    title       = COALESCE(?, title),
    excerpt     = COALESCE(?, excerpt),
    content     = COALESCE(?, content),
    cover_image = COALESCE(?, cover_image),
    category    = COALESCE(?, category),
    author      = COALESCE(?, author),
    published   = COALESCE(?, published),
    updated_at  = MAX(?, updated_at + 1)
WHERE id = ?
RETURNING ` + postColumns
	p, err := scanPost(repo.db.QueryRowContext(ctx, query,
		patch.Title, patch.Excerpt, patch.Content, patch.CoverImage,
		patch.Category, patch.Author, patch.Published,
		millis(repo.settings.Now()), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.StorageError("Update", err)
	}
	return p, nil
}

func (repo *PostRepo) Remove(ctx context.Context, id string) (bool, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return false, repository.StorageError("Remove", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, repository.StorageError("Remove: RowsAffected", err)
	}
	return n > 0, nil
}

func (repo *PostRepo) Ping(ctx context.Context) error {
	if err := repo.db.PingContext(ctx); err != nil {
		return repository.StorageError("Ping", err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepo)(nil)
