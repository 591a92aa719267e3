// Package records provides server-side storage for field record documents:
// a PostgreSQL repository for deployments and an in-memory one for
// development.
package records

import (
	"context"

	"github.com/dmitrijs2005/fieldkeeper/internal/server/models"
)

type Repository interface {
	// Upsert stores rec, replacing the document and updated_at of an
	// existing row with the same id. created_at keeps its first value.
	Upsert(ctx context.Context, rec *models.Record) (*models.Record, error)
	// List returns every stored record.
	List(ctx context.Context) ([]*models.Record, error)
}
