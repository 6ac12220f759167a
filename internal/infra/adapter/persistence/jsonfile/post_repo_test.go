package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/infra/adapter/persistence/jsonfile"
	"inkwell/internal/repository"
)

/* ───────── helpers ───────── */

// stepClock advances one second on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newRepo(t *testing.T) (*jsonfile.PostRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "blogs.json")
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo, err := jsonfile.NewPostRepo(path, repository.WithClock(clock.Now))
	require.NoError(t, err)
	return repo, path
}

func ptr[T any](v T) *T { return &v }

func sampleFields(title string) repository.PostFields {
	return repository.PostFields{
		Title: title, Excerpt: "ex", Content: "body",
		Category: "General", Author: "Guest Writer",
	}
}

/* ───────── tests ───────── */

func TestNewPostRepo_CreatesEmptyFile(t *testing.T) {
	_, path := newRepo(t)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestPostRepo_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	got, err := repo.Insert(ctx, sampleFields("Hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	fetched, err := repo.Get(ctx, got.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(got, fetched); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	missing, err := repo.Get(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepo_InsertAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := repo.Insert(ctx, sampleFields("t"))
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestPostRepo_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	first, err := repo.Insert(ctx, sampleFields("first"))
	require.NoError(t, err)
	second, err := repo.Insert(ctx, sampleFields("second"))
	require.NoError(t, err)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestPostRepo_UpdateMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	orig, err := repo.Insert(ctx, sampleFields("old"))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, orig.ID, repository.PostPatch{Title: ptr("X")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "X", updated.Title)
	assert.True(t, updated.UpdatedAt.After(orig.UpdatedAt))

	want := orig.Clone()
	want.Title = "X"
	want.UpdatedAt = updated.UpdatedAt
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	stored, err := repo.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestPostRepo_UpdateMissing(t *testing.T) {
	repo, _ := newRepo(t)

	got, err := repo.Update(context.Background(), "nope", repository.PostPatch{Title: ptr("X")})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostRepo_UpdatedAtStrictlyIncreasesWithFrozenClock(t *testing.T) {
	ctx := context.Background()
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo, err := jsonfile.NewPostRepo(filepath.Join(t.TempDir(), "blogs.json"),
		repository.WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)

	p, err := repo.Insert(ctx, sampleFields("t"))
	require.NoError(t, err)

	prev := p.UpdatedAt
	for i := 0; i < 3; i++ {
		u, err := repo.Update(ctx, p.ID, repository.PostPatch{Published: ptr(i%2 == 0)})
		require.NoError(t, err)
		assert.True(t, u.UpdatedAt.After(prev))
		assert.Equal(t, p.CreatedAt, u.CreatedAt)
		prev = u.UpdatedAt
	}
}

func TestPostRepo_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	p, err := repo.Insert(ctx, sampleFields("t"))
	require.NoError(t, err)

	removed, err := repo.Remove(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = repo.Remove(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPostRepo_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	repo, path := newRepo(t)

	p, err := repo.Insert(ctx, sampleFields("durable"))
	require.NoError(t, err)

	reopened, err := jsonfile.NewPostRepo(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "durable", got.Title)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestPostRepo_CorruptFileIsStorageError(t *testing.T) {
	ctx := context.Background()
	repo, path := newRepo(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, repository.ErrStorage)

	_, err = repo.Insert(ctx, sampleFields("t"))
	assert.ErrorIs(t, err, repository.ErrStorage)

	assert.ErrorIs(t, repo.Ping(ctx), repository.ErrStorage)
}

func TestPostRepo_ConcurrentUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	p, err := repo.Insert(ctx, sampleFields("race"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, p.ID, repository.PostPatch{Title: ptr("updated")})
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = repo.Remove(ctx, p.ID)
	}()
	wg.Wait()

	// The delete wins eventually: no update may resurrect the record.
	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepo_ImplementsInterface(t *testing.T) {
	repo, _ := newRepo(t)
	var _ repository.PostRepository = repo
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestPostRepo_CanceledContextWritesNothing(t *testing.T) {
	repo, _ := newRepo(t)
	p, err := repo.Insert(context.Background(), sampleFields("keep"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.Insert(ctx, sampleFields("late"))
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.Update(ctx, p.ID, repository.PostPatch{Title: ptr("late")})
	assert.ErrorIs(t, err, repository.ErrStorage)

	removed, err := repo.Remove(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.False(t, removed)

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "keep", posts[0].Title)
}
