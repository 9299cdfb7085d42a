package client

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/bujo/internal/client/migrations"
	"github.com/dmitrijs2005/bujo/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

// Storage backends for the session repository.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and applies pending migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	return db, nil
}

// StorageOptions selects where the session record is kept.
type StorageOptions struct {
	Kind         string
	DatabasePath string
	RedisURL     string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenRepository builds the session repository described by opts. The
// returned Closer releases the underlying connection.
func OpenRepository(ctx context.Context, opts StorageOptions) (metadata.Repository, io.Closer, error) {
	switch strings.ToLower(opts.Kind) {
	case "", StoreSQLite:
		db, err := InitDatabase(ctx, opts.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), db, nil
	case StoreRedis:
		rdb, err := metadata.NewRedisClient(ctx, opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewRedisRepository(rdb, metadata.DefaultRedisPrefix), rdb, nil
	case StoreMemory:
		return metadata.NewMemoryRepository(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", opts.Kind)
	}
}
