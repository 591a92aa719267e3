package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fieldkeeper/internal/dbx"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		INSERT INTO records (id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
		RETURNING id, data, created_at, updated_at;
	`
	var out models.Record
	var data []byte
	err := r.db.QueryRowContext(ctx, query, rec.ID, []byte(rec.Data), rec.CreatedAt, rec.UpdatedAt).
		Scan(&out.ID, &data, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert record %s: %w", rec.ID, err)
	}
	out.Data = data
	return &out, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT id, data, created_at, updated_at FROM records ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	result := []*models.Record{}
	for rows.Next() {
		var item models.Record
		var data []byte
		if err := rows.Scan(&item.ID, &data, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		item.Data = data
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return result, nil
}
