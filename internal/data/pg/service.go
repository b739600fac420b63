package pg

import (
	"context"
	"database/sql"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	dbutil "github.com/iamshubha/roy-dex-sub005/internal/util/db"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// Service is the Postgres store of the wallet. It offers the same operations as the
// embedded local store.
type Service struct {
	db *sql.DB
}

// Open connects to the configured database and checks the connection.
func Open(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return db, nil
}

func NewService(db *sql.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	return &Service{db: db}, nil
}

// Migrate applies all pending migrations and returns how many were applied.
func (s *Service) Migrate(ctx context.Context) (int, error) {
	migrate.SetTable(migrationsTable)

	n, err := migrate.Exec(s.db, "postgres", migrations, migrate.Up)
	if err != nil {
		return 0, errors.Wrap(err, "failed to apply migrations")
	}

	util.LogFromContext(ctx).Info().Int("applied", n).Msg("Database migrations applied")

	return n, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Service) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}

	return nil
}

// exec returns the transaction attached to ctx, or the database itself.
func (s *Service) exec(ctx context.Context) boil.ContextExecutor {
	if tx, ok := dbutil.ExecutorFromContext(ctx); ok {
		return tx
	}

	return s.db
}

// WithTransaction runs fn inside a transaction; store calls made with the ctx passed
// to fn join it. A transaction already attached to ctx is reused.
func (s *Service) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := dbutil.ExecutorFromContext(ctx); ok {
		return fn(ctx)
	}

	return dbutil.WithTransaction(ctx, s.db, func(tx boil.ContextExecutor) error {
		return fn(dbutil.ContextWithExecutor(ctx, tx))
	})
}
