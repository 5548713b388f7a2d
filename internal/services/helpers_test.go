package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitrijs2005/savelinks/internal/config"
	"github.com/dmitrijs2005/savelinks/internal/cryptox"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/models"
	"github.com/dmitrijs2005/savelinks/internal/storage"
)

// fastEngine keeps PBKDF2 cheap so the scenario tests stay quick.
func fastEngine() *cryptox.Engine {
	return cryptox.New(cryptox.WithIterations(1000))
}

func observed() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewZapLogger(zap.New(core)), logs
}

func openStorage(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.Open(context.Background(), config.StorageConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "savelinks.db"),
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// requireLogged asserts that exactly one entry with msg was logged at level.
func requireLogged(t *testing.T, logs *observer.ObservedLogs, msg string, level zapcore.Level) {
	t.Helper()
	entries := logs.FilterMessage(msg).All()
	require.Len(t, entries, 1, "log entries for %q", msg)
	require.Equal(t, level, entries[0].Level, "level of %q", msg)
}

// ---- fakes ----

type fakeSecurity struct {
	SecurityCore

	saltErr    error
	deriveErr  error
	encryptErr error
}

func (f *fakeSecurity) GenerateSalt() ([]byte, error) {
	if f.saltErr != nil {
		return nil, f.saltErr
	}
	return f.SecurityCore.GenerateSalt()
}

func (f *fakeSecurity) DeriveKey(password, salt []byte) ([]byte, error) {
	if f.deriveErr != nil {
		return nil, f.deriveErr
	}
	return f.SecurityCore.DeriveKey(password, salt)
}

func (f *fakeSecurity) Encrypt(plaintext, key []byte) ([]byte, error) {
	if f.encryptErr != nil {
		return nil, f.encryptErr
	}
	return f.SecurityCore.Encrypt(plaintext, key)
}

type fakeUsers struct {
	createErr error
	getErr    error
}

func (f *fakeUsers) Create(context.Context, string, []byte, []byte) (int64, error) {
	return 0, f.createErr
}

func (f *fakeUsers) GetByUserName(context.Context, string) (*models.User, error) {
	return nil, f.getErr
}

type fakeLinks struct {
	insertErr error
	listErr   error
	deleteErr error
	list      []models.Link
}

func (f *fakeLinks) Insert(context.Context, int64, []byte) (int64, error) {
	return 1, f.insertErr
}

func (f *fakeLinks) ListByUser(context.Context, int64) ([]models.Link, error) {
	return f.list, f.listErr
}

func (f *fakeLinks) Delete(context.Context, int64, int64) (int64, error) {
	return 0, f.deleteErr
}

var errDiskIO = errors.New("disk I/O error")
