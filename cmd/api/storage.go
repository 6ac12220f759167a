package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sony/gobreaker"

	"inkwell/internal/config"
	"inkwell/internal/infra/adapter/persistence/jsonfile"
	mongoRepo "inkwell/internal/infra/adapter/persistence/mongo"
	pgRepo "inkwell/internal/infra/adapter/persistence/postgres"
	sqliteRepo "inkwell/internal/infra/adapter/persistence/sqlite"
	"inkwell/internal/infra/db"
	"inkwell/internal/observability/metrics"
	"inkwell/internal/repository"
)

// storage is the post repository together with the client it was built on.
// main owns the client and closes it on shutdown.
type storage struct {
	Repo repository.PostRepository
	// DB is set for SQL backends.
	DB *sql.DB

	close func() error
}

// Close releases the underlying client.
func (s *storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openStorage opens the configured backend and builds its post repository.
func openStorage(ctx context.Context, cfg config.StorageConfig) (*storage, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		repo, err := jsonfile.NewPostRepo(cfg.JSONPath)
		if err != nil {
			return nil, err
		}
		return &storage{Repo: repo}, nil

	case config.BackendPostgres:
		database, err := db.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return sqlStorage(database, db.DialectPostgres, cfg.Migrate, pgRepo.NewPostRepo(database))

	case config.BackendSQLite:
		database, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlStorage(database, db.DialectSQLite, cfg.Migrate, sqliteRepo.NewPostRepo(database))

	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		repo := mongoRepo.NewPostRepo(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &storage{
			Repo:  repo,
			close: func() error { return client.Disconnect(context.Background()) },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func sqlStorage(database *sql.DB, dialect db.Dialect, migrate bool, repo repository.PostRepository) (*storage, error) {
	if migrate {
		if err := db.MigrateUp(database, dialect); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}
	return &storage{Repo: repo, DB: database, close: database.Close}, nil
}

// observeBreaker exports the storage circuit state as a gauge
// (0 closed, 1 half-open, 2 open).
func observeBreaker(name string, _, to gobreaker.State) {
	metrics.UpdateStorageCircuitState(name, int(to))
}
