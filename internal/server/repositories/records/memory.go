package records

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/fieldkeeper/internal/server/models"
)

// MemoryRepository keeps records in process memory, in first-insert order.
// It is used when no database is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*models.Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*models.Record{}}
}

func (r *MemoryRepository) Upsert(ctx context.Context, rec *models.Record) (*models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := &models.Record{
		ID:        rec.ID,
		Data:      slices.Clone(rec.Data),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if prev, ok := r.byID[rec.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		r.order = append(r.order, rec.ID)
	}
	r.byID[rec.ID] = stored

	out := *stored
	return &out, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Record, 0, len(r.order))
	for _, id := range r.order {
		item := *r.byID[id]
		result = append(result, &item)
	}
	return result, nil
}
