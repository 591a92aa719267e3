// Package store persists survey records and user preferences on the device.
//
// The whole record collection is one JSON array under a single kv key, so
// every write replaces the collection atomically and readers never observe a
// half-written list.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
)

const RecordsKey = "fieldkeeper_records"

// SyncTrigger starts a background sync pass. Trigger must return without
// waiting for the pass.
type SyncTrigger interface {
	Trigger()
}

type noopTrigger struct{}

func (noopTrigger) Trigger() {}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) {
		s.now = now
	}
}

// WithSyncTrigger sets the trigger fired after every successful Save.
func WithSyncTrigger(t SyncTrigger) Option {
	return func(s *RecordStore) {
		s.trigger = t
	}
}

// RecordStore is the durable local collection of FieldRecords.
type RecordStore struct {
	repo    kv.Repository
	log     logging.Logger
	now     func() time.Time
	trigger SyncTrigger
}

func NewRecordStore(repo kv.Repository, log logging.Logger, opts ...Option) *RecordStore {
	s := &RecordStore{
		repo:    repo,
		log:     log,
		now:     time.Now,
		trigger: noopTrigger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSyncTrigger wires the trigger after construction; the syncer itself
// depends on the store.
func (s *RecordStore) SetSyncTrigger(t SyncTrigger) {
	s.trigger = t
}

// GetAll returns every stored record in storage order. Unreadable or corrupt
// storage yields an empty list.
func (s *RecordStore) GetAll(ctx context.Context) []models.FieldRecord {
	data, err := s.repo.Get(ctx, RecordsKey)
	if err != nil {
		s.log.Error(ctx, "failed to read records", "err", err)
		return []models.FieldRecord{}
	}
	records, err := decodeRecords(data)
	if err != nil {
		s.log.Error(ctx, "failed to parse records", "err", err)
		return []models.FieldRecord{}
	}
	return records
}

// Get returns the record with the given id or common.ErrNotFound.
func (s *RecordStore) Get(ctx context.Context, id string) (*models.FieldRecord, error) {
	for _, r := range s.GetAll(ctx) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
}

// Save upserts rec by id. It stamps UpdatedAt, bumps Revision and marks the
// record pending on rec itself, then fires the sync trigger. Whatever
// UpdatedAt the caller passed is overwritten.
func (s *RecordStore) Save(ctx context.Context, rec *models.FieldRecord) error {
	if err := rec.ValidateLayout(); err != nil {
		return err
	}

	err := s.repo.Update(ctx, RecordsKey, func(old []byte) ([]byte, error) {
		records, err := decodeRecords(old)
		if err != nil {
			s.log.Error(ctx, "stored records are corrupt, starting a new collection", "err", err)
			records = nil
		}

		idx := indexOf(records, rec.ID)

		updated := s.now().UnixMilli()
		if updated < rec.CreatedAt {
			updated = rec.CreatedAt
		}
		if idx >= 0 {
			prev := records[idx]
			if updated < prev.UpdatedAt {
				updated = prev.UpdatedAt
			}
			if rec.Revision < prev.Revision {
				rec.Revision = prev.Revision
			}
		}
		rec.UpdatedAt = updated
		rec.Revision++
		rec.SyncStatus = models.SyncPending

		if idx >= 0 {
			records[idx] = *rec.Clone()
		} else {
			records = append(records, *rec.Clone())
		}
		return json.Marshal(records)
	})
	if err != nil {
		return fmt.Errorf("save record %s: %w", rec.ID, err)
	}

	s.log.Debug(ctx, "record saved", "record_id", rec.ID, "revision", rec.Revision)
	s.trigger.Trigger()
	return nil
}

// Delete removes the record with the given id. Unknown ids are a no-op, and
// so is a corrupt collection: it is left in place for the next Save to
// replace.
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	err := s.repo.Update(ctx, RecordsKey, func(old []byte) ([]byte, error) {
		records, err := decodeRecords(old)
		if err != nil {
			s.log.Error(ctx, "stored records are corrupt, nothing to delete", "record_id", id, "err", err)
			return old, nil
		}
		idx := indexOf(records, id)
		if idx < 0 {
			return old, nil
		}
		records = append(records[:idx], records[idx+1:]...)
		return json.Marshal(records)
	})
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// MarkSynced flips the stored record to synced if its revision still equals
// revision. A newer local save keeps the record pending; the returned bool
// reports whether the flip happened.
func (s *RecordStore) MarkSynced(ctx context.Context, id string, revision int64) (bool, error) {
	marked := false
	err := s.repo.Update(ctx, RecordsKey, func(old []byte) ([]byte, error) {
		records, err := decodeRecords(old)
		if err != nil {
			return nil, err
		}
		idx := indexOf(records, id)
		if idx < 0 || records[idx].Revision != revision {
			return old, nil
		}
		if records[idx].SyncStatus == models.SyncSynced {
			marked = true
			return old, nil
		}
		records[idx].SyncStatus = models.SyncSynced
		marked = true
		return json.Marshal(records)
	})
	if err != nil {
		return false, fmt.Errorf("mark record %s synced: %w", id, err)
	}
	return marked, nil
}

// PendingCount is the number of records the server does not hold yet.
func (s *RecordStore) PendingCount(ctx context.Context) int {
	n := 0
	for _, r := range s.GetAll(ctx) {
		if !r.IsSynced() {
			n++
		}
	}
	return n
}

// List returns all records, most recently updated first.
func (s *RecordStore) List(ctx context.Context) []models.FieldRecord {
	records := s.GetAll(ctx)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAt > records[j].UpdatedAt
	})
	return records
}

func decodeRecords(data []byte) ([]models.FieldRecord, error) {
	if len(data) == 0 {
		return []models.FieldRecord{}, nil
	}
	var records []models.FieldRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.FieldRecord{}
	}
	return records, nil
}

func indexOf(records []models.FieldRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
