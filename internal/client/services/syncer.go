package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
)

const DefaultPassTimeout = 2 * time.Minute

// RecordSource is the local side of sync.
type RecordSource interface {
	GetAll(ctx context.Context) []models.FieldRecord
	MarkSynced(ctx context.Context, id string, revision int64) (bool, error)
}

// Uploader is the remote side of sync.
type Uploader interface {
	UpsertRecord(ctx context.Context, rec *models.FieldRecord) error
}

// Report summarizes one sync pass. Superseded counts records the server
// accepted but which were edited locally during the upload; they stay
// pending and go out again on the next pass.
type Report struct {
	Attempted  int
	Synced     int
	Failed     int
	Superseded int
}

// Syncer pushes pending records to the server one at a time.
type Syncer struct {
	source      RecordSource
	uploader    Uploader
	log         logging.Logger
	passTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithPassTimeout bounds each background pass started by Trigger.
func WithPassTimeout(d time.Duration) SyncerOption {
	return func(s *Syncer) {
		s.passTimeout = d
	}
}

func NewSyncer(source RecordSource, uploader Uploader, log logging.Logger, opts ...SyncerOption) *Syncer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Syncer{
		source:      source,
		uploader:    uploader,
		log:         log,
		passTimeout: DefaultPassTimeout,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncAll runs one pass over every record that is not synced. Per-record
// failures are logged and leave the record untouched; they never stop the
// pass.
func (s *Syncer) SyncAll(ctx context.Context) Report {
	var rep Report

	records := s.source.GetAll(ctx)
	pending := make([]models.FieldRecord, 0, len(records))
	for _, r := range records {
		if !r.IsSynced() {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		return rep
	}

	for i := range pending {
		if ctx.Err() != nil {
			s.log.Warn(ctx, "sync pass interrupted", "remaining", len(pending)-i, "err", ctx.Err())
			break
		}
		rec := &pending[i]
		rep.Attempted++

		if err := s.uploader.UpsertRecord(ctx, rec); err != nil {
			rep.Failed++
			s.log.Warn(ctx, "record sync failed", "record_id", rec.ID, "err", err)
			continue
		}

		marked, err := s.source.MarkSynced(ctx, rec.ID, rec.Revision)
		switch {
		case err != nil:
			rep.Failed++
			s.log.Error(ctx, "failed to mark record synced", "record_id", rec.ID, "err", err)
		case !marked:
			rep.Superseded++
			s.log.Debug(ctx, "record changed during upload", "record_id", rec.ID, "revision", rec.Revision)
		default:
			rep.Synced++
		}
	}

	s.log.Info(ctx, "sync pass finished",
		"attempted", rep.Attempted, "synced", rep.Synced, "failed", rep.Failed, "superseded", rep.Superseded)
	return rep
}

// Trigger starts a detached pass and returns at once. Passes may overlap.
// After Close it does nothing.
func (s *Syncer) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(s.ctx, s.passTimeout)
		defer cancel()
		s.SyncAll(ctx)
	}()
}

// Run triggers a pass immediately and then every interval until ctx is done.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	s.Trigger()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Trigger()
		}
	}
}

// Close cancels running passes and waits for them to return.
func (s *Syncer) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
