package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/config"
	"github.com/dmitrijs2005/savelinks/internal/logging"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func exercise(t *testing.T, s *Storage) {
	t.Helper()
	ctx := context.Background()

	uid, err := s.Users.Create(ctx, "alice", []byte("salt-salt-salt-1"), []byte("verifier"))
	require.NoError(t, err)

	_, err = s.Users.Create(ctx, "alice", []byte("salt-salt-salt-2"), []byte("verifier"))
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	id, err := s.Links.Insert(ctx, uid, []byte("blob"))
	require.NoError(t, err)

	list, err := s.Links.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	require.NoError(t, s.Metadata.SetAll(ctx, map[string][]byte{"kdf": []byte("scrypt")}))
	v, err := s.Metadata.Get(ctx, "kdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("scrypt"), v)
}

func TestOpen_SQLite_CreatesDirAndSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "savelinks.db")

	s, err := Open(ctx, config.StorageConfig{Driver: config.DriverSQLite, DSN: path}, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), fi.Mode().Perm())

	exercise(t, s)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", sqliteDSN(filepath.Join(t.TempDir(), "app.db")))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db, config.DriverSQLite, logging.NewNop()))
	require.NoError(t, RunMigrations(ctx, db, config.DriverSQLite, logging.NewNop()))

	for _, table := range []string{"goose_db_version", "users", "links", "metadata"} {
		assert.True(t, tableExists(t, db, table), table)
	}
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := RunMigrations(context.Background(), nil, config.DriverBolt, logging.NewNop())
	require.ErrorContains(t, err, "no migrations")
}

func TestOpen_SQLite_MigrationFailure(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	_, err := Open(context.Background(),
		config.StorageConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "x.db")},
		logging.NewNop())
	require.ErrorContains(t, err, "migration error: boom")
}

func TestOpen_Bolt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "savelinks.bolt")

	s, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverBolt, DSN: path}, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()

	exercise(t, s)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "mysql", DSN: "x"}, logging.NewNop())
	require.ErrorContains(t, err, `unsupported storage driver "mysql"`)
}

func TestGooseLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := &gooseLogger{log: logging.NewZapLogger(zap.New(core))}

	g.Printf("OK   %s (%s)\n", "00001_init.sql", "1ms")
	g.Fatalf("failed: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "OK   00001_init.sql (1ms)", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
