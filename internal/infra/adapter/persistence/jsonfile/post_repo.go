// Package jsonfile provides a PostRepository backed by a single JSON document on disk.
// The whole collection is rewritten on every mutation through a temp file and an
// atomic rename, so a crash never leaves a half-written file behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"inkwell/internal/domain/entity"
	"inkwell/internal/repository"
)

// record is the on-disk shape of a post.
type record struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	CoverImage string    `json:"coverImage"`
	Category   string    `json:"category"`
	Author     string    `json:"author"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func fromEntity(p *entity.Post) record {
	return record{
		ID: p.ID, Title: p.Title, Excerpt: p.Excerpt, Content: p.Content,
		CoverImage: p.CoverImage, Category: p.Category, Author: p.Author,
		Published: p.Published, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (r record) toEntity() *entity.Post {
	return &entity.Post{
		ID: r.ID, Title: r.Title, Excerpt: r.Excerpt, Content: r.Content,
		CoverImage: r.CoverImage, Category: r.Category, Author: r.Author,
		Published: r.Published, CreatedAt: r.CreatedAt.UTC(), UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// PostRepo implements repository.PostRepository on a JSON file.
// A single mutex serializes every read-modify-write cycle within the process.
type PostRepo struct {
	mu       sync.Mutex
	path     string
	settings repository.Settings
}

// NewPostRepo creates the data directory and an empty collection file if needed.
func NewPostRepo(path string, opts ...repository.Option) (*PostRepo, error) {
	repo := &PostRepo{path: path, settings: repository.NewSettings(opts...)}
	if err := repo.ensureFile(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (repo *PostRepo) ensureFile() error {
	if dir := filepath.Dir(repo.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if _, err := os.Stat(repo.path); errors.Is(err, os.ErrNotExist) {
		return repo.save(nil)
	} else if err != nil {
		return fmt.Errorf("stat data file: %w", err)
	}
	return nil
}

// load must be called with mu held.
func (repo *PostRepo) load() ([]record, error) {
	b, err := os.ReadFile(repo.path)
	if err != nil {
		return nil, err
	}
	var records []record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", repo.path, err)
	}
	return records, nil
}

// save must be called with mu held. The file is fsynced before the rename so
// the write is durable once save returns.
func (repo *PostRepo) save(records []record) error {
	if records == nil {
		records = []record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(repo.path), filepath.Base(repo.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), repo.path)
}

// List returns every post ordered by creation time, newest first.
func (repo *PostRepo) List(_ context.Context) ([]*entity.Post, error) {
	repo.mu.Lock()
	records, err := repo.load()
	repo.mu.Unlock()
	if err != nil {
		return nil, repository.StorageError("List", err)
	}

	posts := make([]*entity.Post, 0, len(records))
	for _, r := range records {
		posts = append(posts, r.toEntity())
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Get returns the post with the given id, or nil if absent.
func (repo *PostRepo) Get(_ context.Context, id string) (*entity.Post, error) {
	repo.mu.Lock()
	records, err := repo.load()
	repo.mu.Unlock()
	if err != nil {
		return nil, repository.StorageError("Get", err)
	}

	for _, r := range records {
		if r.ID == id {
			return r.toEntity(), nil
		}
	}
	return nil, nil
}

// Insert prepends a new post to the collection.
func (repo *PostRepo) Insert(ctx context.Context, fields repository.PostFields) (*entity.Post, error) {
	now := entity.Timestamp(repo.settings.Now())
	post := &entity.Post{
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

	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, repository.StorageError("Insert", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, repository.StorageError("Insert", err)
	}
	records = append([]record{fromEntity(post)}, records...)
	if err := repo.save(records); err != nil {
		return nil, repository.StorageError("Insert", err)
	}
	return post, nil
}

// Update merges patch into the stored post.
func (repo *PostRepo) Update(ctx context.Context, id string, patch repository.PostPatch) (*entity.Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, repository.StorageError("Update", err)
	}

	for i, r := range records {
		if r.ID != id {
			continue
		}
		post := r.toEntity()
		patch.Apply(post)
		post.UpdatedAt = entity.NextUpdatedAt(post.UpdatedAt, repo.settings.Now())
		records[i] = fromEntity(post)
		if err := ctx.Err(); err != nil {
			return nil, repository.StorageError("Update", err)
		}
		if err := repo.save(records); err != nil {
			return nil, repository.StorageError("Update", err)
		}
		return post, nil
	}
	return nil, nil
}

// Remove deletes the post and reports whether it existed.
func (repo *PostRepo) Remove(ctx context.Context, id string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return false, repository.StorageError("Remove", err)
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, repository.StorageError("Remove", err)
	}
	if err := repo.save(kept); err != nil {
		return false, repository.StorageError("Remove", err)
	}
	return true, nil
}

// Ping verifies the collection file is readable and well-formed.
func (repo *PostRepo) Ping(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, err := repo.load(); err != nil {
		return repository.StorageError("Ping", err)
	}
	return nil
}
