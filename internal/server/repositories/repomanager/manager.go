// Package repomanager chooses and opens the server's record storage:
// PostgreSQL when a DSN is configured, process memory otherwise.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/fieldkeeper/internal/server/repositories/records"
)

type RepositoryManager interface {
	Records() records.Repository
	Close() error
}

// Open returns a PostgreSQL-backed manager with migrations applied, or an
// in-memory one when dsn is empty.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(ctx, dsn)
}

// MemoryRepositoryManager keeps records for the lifetime of the process.
type MemoryRepositoryManager struct {
	records *records.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{records: records.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Records() records.Repository { return m.records }

func (m *MemoryRepositoryManager) Close() error { return nil }
