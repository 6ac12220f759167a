// Package resilience holds fault tolerance patterns shared by the storage layer.
//
// Storage calls are never retried: a failed read degrades and a failed write is
// reported to the caller. The circuitbreaker subpackage stops hammering a
// backend that keeps failing and fails fast with repository.ErrStorage instead.
//
// Usage Example:
//
//	repo := circuitbreaker.NewRepository(pgRepo, circuitbreaker.RepositoryConfig("postgres"))
//	posts, err := repo.List(ctx)
package resilience
