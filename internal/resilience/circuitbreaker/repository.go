package circuitbreaker

import (
	"context"

	"github.com/sony/gobreaker"

	"inkwell/internal/domain/entity"
	"inkwell/internal/repository"
)

// Repository guards a PostRepository with a circuit breaker. While the circuit
// is open every call fails with repository.ErrStorage without reaching the backend.
// A not-found result is a success.
type Repository struct {
	cb   *CircuitBreaker
	next repository.PostRepository
}

// NewRepository wraps next with a breaker built from cfg.
func NewRepository(next repository.PostRepository, cfg Config, observers ...StateObserver) *Repository {
	return &Repository{cb: New(cfg, observers...), next: next}
}

func run[T any](r *Repository, op string, fn func() (T, error)) (T, error) {
	result, err := r.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if IsRejection(err) {
			return zero, repository.StorageError(op, err)
		}
		return zero, err
	}
	return result.(T), nil
}

func (r *Repository) List(ctx context.Context) ([]*entity.Post, error) {
	return run(r, "List", func() ([]*entity.Post, error) { return r.next.List(ctx) })
}

func (r *Repository) Get(ctx context.Context, id string) (*entity.Post, error) {
	return run(r, "Get", func() (*entity.Post, error) { return r.next.Get(ctx, id) })
}

func (r *Repository) Insert(ctx context.Context, fields repository.PostFields) (*entity.Post, error) {
	return run(r, "Insert", func() (*entity.Post, error) { return r.next.Insert(ctx, fields) })
}

func (r *Repository) Update(ctx context.Context, id string, patch repository.PostPatch) (*entity.Post, error) {
	return run(r, "Update", func() (*entity.Post, error) { return r.next.Update(ctx, id, patch) })
}

func (r *Repository) Remove(ctx context.Context, id string) (bool, error) {
	return run(r, "Remove", func() (bool, error) { return r.next.Remove(ctx, id) })
}

// Ping bypasses the breaker so readiness reflects the backend itself.
func (r *Repository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// State returns the current state of the circuit breaker.
func (r *Repository) State() gobreaker.State {
	return r.cb.State()
}

var _ repository.PostRepository = (*Repository)(nil)
