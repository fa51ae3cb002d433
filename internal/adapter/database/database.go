package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/romansndlr/remix-todos/internal/adapter/database/memory"
	"github.com/romansndlr/remix-todos/internal/adapter/database/postgres"
	pgrepository "github.com/romansndlr/remix-todos/internal/adapter/database/postgres/repository"
	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite"
	sqliterepository "github.com/romansndlr/remix-todos/internal/adapter/database/sqlite/repository"
	"github.com/romansndlr/remix-todos/internal/core/port"
	"github.com/romansndlr/remix-todos/pkg/config"
)

// Store is an opened todo repository together with the pool behind it.
type Store struct {
	Driver string
	Todos  port.TodoRepository
	close  func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the configured driver, applies pending migrations and
// returns the repository for it.
func Open(ctx context.Context, cfg config.DatabaseConfig, queryLogger zerolog.Logger, probe port.Telemetry) (*Store, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, cfg.Path, queryLogger)

		if err != nil {
			return nil, err
		}

		return &Store{
			Driver: cfg.Driver,
			Todos:  sqliterepository.NewTodoRepository(db, probe),
			close:  func() { db.Close() },
		}, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.URL)

		if err != nil {
			return nil, err
		}

		return &Store{
			Driver: cfg.Driver,
			Todos:  pgrepository.NewTodoRepository(db, probe),
			close:  db.Close,
		}, nil

	case "memory":
		return &Store{
			Driver: cfg.Driver,
			Todos:  memory.NewTodoRepository(),
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Migrate applies pending migrations without opening a repository.
func Migrate(cfg config.DatabaseConfig, queryLogger zerolog.Logger) error {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Path, queryLogger)

		if err != nil {
			return err
		}

		defer db.Close()

		return sqlite.RunMigrations(db)

	case "postgres":
		return postgres.RunMigrations(cfg.URL)

	case "memory":
		return nil
	}

	return fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
