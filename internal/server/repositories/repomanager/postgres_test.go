package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fieldkeeper/internal/server/repositories/records"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	})

	require.NoError(t, RunMigrations(context.Background(), db))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestNewPostgresManager_WiresRecords(t *testing.T) {
	db, mock := newDB(t)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error { return nil })

	m, err := newPostgresManager(context.Background(), db)
	require.NoError(t, err)

	var _ RepositoryManager = m
	_, ok := m.Records().(*records.PostgresRepository)
	assert.True(t, ok)

	mock.ExpectClose()
	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresManager_MigrationError(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	_, err := newPostgresManager(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations error")
}

func TestNewPostgresRepositoryManager_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewPostgresRepositoryManager(ctx, "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
}

func TestOpen_EmptyDSNUsesMemory(t *testing.T) {
	m, err := Open(context.Background(), "")
	require.NoError(t, err)

	_, ok := m.Records().(*records.MemoryRepository)
	assert.True(t, ok)
	assert.NoError(t, m.Close())
}
