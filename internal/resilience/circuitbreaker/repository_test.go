package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/entity"
	"inkwell/internal/repository"
)

// stubRepo fails every call while err is set and counts calls that reach it.
type stubRepo struct {
	err   error
	calls int
}

func (s *stubRepo) List(context.Context) ([]*entity.Post, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []*entity.Post{{ID: "a"}}, nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Post, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if id == "missing" {
		return nil, nil
	}
	return &entity.Post{ID: id}, nil
}

func (s *stubRepo) Insert(_ context.Context, f repository.PostFields) (*entity.Post, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Post{ID: "new", Title: f.Title}, nil
}

func (s *stubRepo) Update(_ context.Context, id string, _ repository.PostPatch) (*entity.Post, error) {
	s.calls++
	return nil, s.err
}

func (s *stubRepo) Remove(context.Context, string) (bool, error) {
	s.calls++
	return s.err == nil, s.err
}

func (s *stubRepo) Ping(context.Context) error { return s.err }

func tripConfig() Config {
	cfg := RepositoryConfig("stub")
	cfg.MinRequests = 3
	cfg.Timeout = time.Hour
	return cfg
}

func TestRepository_PassesThrough(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(&stubRepo{}, tripConfig())

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	missing, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.Insert(ctx, repository.PostFields{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "t", created.Title)

	updated, err := repo.Update(ctx, "missing", repository.PostPatch{})
	require.NoError(t, err)
	assert.Nil(t, updated)

	removed, err := repo.Remove(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestRepository_NotFoundDoesNotTrip(t *testing.T) {
	repo := NewRepository(&stubRepo{}, tripConfig())

	for i := 0; i < 10; i++ {
		_, err := repo.Get(context.Background(), "missing")
		require.NoError(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, repo.State())
}

func TestRepository_OpenCircuitFailsFast(t *testing.T) {
	ctx := context.Background()
	cause := repository.StorageError("List", errors.New("connection refused"))
	stub := &stubRepo{err: cause}
	repo := NewRepository(stub, tripConfig())

	for i := 0; i < 3; i++ {
		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, cause)
	}
	require.Equal(t, gobreaker.StateOpen, repo.State())

	calls := stub.calls
	_, err := repo.Insert(ctx, repository.PostFields{Title: "t"})
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, calls, stub.calls, "open circuit must not reach the backend")

	_, err = repo.Remove(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrStorage)
}

func TestRepository_PingBypassesBreaker(t *testing.T) {
	stub := &stubRepo{err: repository.StorageError("x", errors.New("down"))}
	repo := NewRepository(stub, tripConfig())
	for i := 0; i < 3; i++ {
		_, _ = repo.List(context.Background())
	}
	require.Equal(t, gobreaker.StateOpen, repo.State())

	stub.err = nil
	assert.NoError(t, repo.Ping(context.Background()))
}
