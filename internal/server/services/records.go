package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/repositories/records"
)

// RecordService accepts record documents from clients and lists them back.
// Documents are stored as sent; the server never merges fields.
type RecordService struct {
	repo records.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewRecordService(repo records.Repository, log logging.Logger) *RecordService {
	return &RecordService{repo: repo, log: log.With("module", "records"), now: time.Now}
}

// Save upserts the document in body by its id and returns the stored
// document. Invalid documents fail with common.ErrInvalidRecord.
func (s *RecordService) Save(ctx context.Context, body []byte) (json.RawMessage, error) {
	rec, err := models.ParseRecord(body, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save record %s: %w", rec.ID, err)
	}
	s.log.Debug(ctx, "record saved", "id", saved.ID, "updated_at", saved.UpdatedAt)
	return saved.Data, nil
}

// List returns every stored document.
func (s *RecordService) List(ctx context.Context) ([]json.RawMessage, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]json.RawMessage, 0, len(all))
	for _, r := range all {
		out = append(out, r.Data)
	}
	return out, nil
}
