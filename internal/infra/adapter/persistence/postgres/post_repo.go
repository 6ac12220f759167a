package postgres

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

// NewPostRepo wraps an open pool. The caller keeps ownership of db.
func NewPostRepo(db *sql.DB, opts ...repository.Option) *PostRepo {
	return &PostRepo{db: db, settings: repository.NewSettings(opts...)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*entity.Post, error) {
	var p entity.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.Category, &p.Author, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = entity.Timestamp(p.CreatedAt)
	p.UpdatedAt = entity.Timestamp(p.UpdatedAt)
	return &p, nil
}

func (repo *PostRepo) List(ctx context.Context) ([]*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
ORDER BY created_at DESC, id DESC`
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
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE id = $1
LIMIT 1`
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

	const query = `
INSERT INTO posts (` + postColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := repo.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Excerpt, p.Content, p.CoverImage,
		p.Category, p.Author, p.Published, p.CreatedAt, p.UpdatedAt); err != nil {
		return nil, repository.StorageError("Insert", err)
	}
	return p, nil
}

// Update merges the patch in one statement so a concurrent Remove can never
// observe a half-applied row. updated_at moves forward by at least a millisecond.
func (repo *PostRepo) Update(ctx context.Context, id string, patch repository.PostPatch) (*entity.Post, error) {
	const query = `
UPDATE posts SET
    title       = COALESCE($2::text, title),
    excerpt     = COALESCE($3::text, excerpt),
    content     = COALESCE($4::text, content),
    cover_image = COALESCE($5::text, cover_image),
    category    = COALESCE($6::text, category),
    author      = COALESCE($7::text, author),
    published   = COALESCE($8::boolean, published),
    updated_at  = GREATEST($9::timestamptz, updated_at + INTERVAL '1 millisecond')
WHERE id = $1
RETURNING ` + postColumns
	p, err := scanPost(repo.db.QueryRowContext(ctx, query, id,
		patch.Title, patch.Excerpt, patch.Content, patch.CoverImage,
		patch.Category, patch.Author, patch.Published,
		entity.Timestamp(repo.settings.Now())))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.StorageError("Update", err)
	}
	return p, nil
}

func (repo *PostRepo) Remove(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM posts WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
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
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := repo.db.PingContext(ctx); err != nil {
		return repository.StorageError("Ping", err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepo)(nil)
