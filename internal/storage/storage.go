// Package storage opens the configured backend, applies the schema and hands
// out the repositories the services depend on.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	bolt "go.etcd.io/bbolt"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/savelinks/internal/config"
	"github.com/dmitrijs2005/savelinks/internal/filex"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/migrations"
	"github.com/dmitrijs2005/savelinks/internal/repositories/links"
	"github.com/dmitrijs2005/savelinks/internal/repositories/metadata"
	"github.com/dmitrijs2005/savelinks/internal/repositories/users"
)

const boltOpenTimeout = time.Second

// Storage bundles the repositories of one opened backend.
type Storage struct {
	Users    users.Repository
	Links    links.Repository
	Metadata metadata.Repository

	closeFn func() error
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Open connects to the backend selected by cfg.Driver and brings its schema
// up to date.
func Open(ctx context.Context, cfg config.StorageConfig, log logging.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.DSN, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DSN, log)
	case config.DriverBolt:
		return openBolt(cfg.DSN, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func openSQLite(ctx context.Context, dsn string, log logging.Logger) (*Storage, error) {
	if !strings.HasPrefix(dsn, "file:") {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db, config.DriverSQLite, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	// One writer at a time; WAL and busy_timeout cover readers.
	db.SetMaxOpenConns(1)

	return &Storage{
		Users:    users.NewSQLiteRepository(db),
		Links:    links.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
		closeFn:  db.Close,
	}, nil
}

func openPostgres(ctx context.Context, dsn string, log logging.Logger) (*Storage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, config.DriverPostgres, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{
		Users:    users.NewPostgresRepository(db),
		Links:    links.NewPostgresRepository(db),
		Metadata: metadata.NewPostgresRepository(db),
		closeFn:  db.Close,
	}, nil
}

func openBolt(path string, log logging.Logger) (*Storage, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("db %s is locked by another process", path)
		}
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s, err := boltStorage(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug(context.Background(), "bolt storage opened", "path", path)
	return s, nil
}

func boltStorage(db *bolt.DB) (*Storage, error) {
	u, err := users.NewBoltRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}
	l, err := links.NewBoltRepository(db)
	if err != nil {
		return nil, fmt.Errorf("link repo creation error: %w", err)
	}
	m, err := metadata.NewBoltRepository(db)
	if err != nil {
		return nil, fmt.Errorf("metadata repo creation error: %w", err)
	}
	return &Storage{Users: u, Links: l, Metadata: m, closeFn: db.Close}, nil
}

func sqliteDSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func ensureDir(path string) error {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	return nil
}

var (
	// goose keeps its base FS, dialect and logger in package globals.
	gooseMu sync.Mutex

	gooseUpContext = goose.UpContext
)

// RunMigrations applies the embedded migrations for driver to db. Running it
// on an up-to-date schema is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, log logging.Logger) error {
	var dialect, dir string
	switch driver {
	case config.DriverSQLite:
		dialect, dir = string(goose.DialectSQLite3), migrations.SQLiteDir
	case config.DriverPostgres:
		dialect, dir = string(goose.DialectPostgres), migrations.PostgresDir
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return gooseUpContext(ctx, db, dir)
}
