// Package speech plays spoken voice instructions, one utterance at a time.
//
// Every Play takes a new token from a monotonic counter and stops whatever is
// audible before it starts loading. A request whose token is no longer the
// latest when it gets to play is discarded, so only the most recent request
// can ever be heard and earlier ones never play out of order.
package speech

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/audio"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
)

type utterance struct {
	text string
	lang models.Language
}

// Manager owns the active audio handle and the request token.
type Manager struct {
	loader audio.Loader
	cache  *URLCache
	log    logging.Logger

	mu       sync.Mutex
	lastID   uint64
	active   audio.Handle
	current  utterance
	enabled  bool
	closed   bool
	watchers sync.WaitGroup
}

func NewManager(loader audio.Loader, cache *URLCache, log logging.Logger) *Manager {
	return &Manager{
		loader:  loader,
		cache:   cache,
		log:     log,
		enabled: true,
	}
}

// Request is a playback request that already holds its token. Play it on
// any goroutine; a later Reserve, Play or Stop makes it stale.
type Request struct {
	m    *Manager
	id   uint64
	text string
	lang models.Language
}

// Reserve takes the next token and stops the active sound on the caller's
// goroutine. It returns nil when voice instructions are disabled or the
// manager is closed.
func (m *Manager) Reserve(text string, lang models.Language) *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled || m.closed {
		return nil
	}
	m.lastID++
	m.stopActiveLocked()
	return &Request{m: m, id: m.lastID, text: text, lang: lang}
}

// Play speaks text in lang. It returns common.ErrStaleRequest when a later
// Play or Stop superseded this request, and the load error when the audio
// could not be fetched or decoded. Failures are not retried.
func (m *Manager) Play(ctx context.Context, text string, lang models.Language) error {
	r := m.Reserve(text, lang)
	if r == nil {
		return nil
	}
	return r.Play(ctx)
}

// Play loads and starts the reserved utterance unless it went stale.
func (r *Request) Play(ctx context.Context) error {
	m := r.m
	locator := m.cache.Resolve(r.text, r.lang)

	if !m.isCurrent(r.id) {
		return common.ErrStaleRequest
	}

	h, err := m.loader.Load(ctx, locator)
	if err != nil {
		m.log.Warn(ctx, "voice instruction unavailable", "lang", r.lang, "err", err)
		return fmt.Errorf("load %q: %w", locator, err)
	}

	m.mu.Lock()
	if r.id != m.lastID {
		m.mu.Unlock()
		h.Release()
		return common.ErrStaleRequest
	}
	if err := h.Play(); err != nil {
		m.mu.Unlock()
		h.Release()
		m.log.Warn(ctx, "voice instruction playback failed", "lang", r.lang, "err", err)
		return fmt.Errorf("play: %w", err)
	}
	m.active = h
	m.current = utterance{text: r.text, lang: r.lang}
	m.watchers.Add(1)
	m.mu.Unlock()

	go m.watch(h)
	return nil
}

// watch clears the active handle on natural completion, unless a newer
// handle already replaced it.
func (m *Manager) watch(h audio.Handle) {
	defer m.watchers.Done()
	<-h.Done()

	m.mu.Lock()
	if m.active == h {
		m.active = nil
		m.current = utterance{}
	}
	m.mu.Unlock()
	h.Release()
}

// Stop invalidates any in-flight request and silences the active sound.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	m.stopActiveLocked()
}

func (m *Manager) stopActiveLocked() {
	if m.active == nil {
		return
	}
	m.active.Stop()
	m.active.Release()
	m.active = nil
	m.current = utterance{}
}

func (m *Manager) isCurrent(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return id == m.lastID
}

func (m *Manager) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Current returns the utterance being played.
func (m *Manager) Current() (string, models.Language, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return "", "", false
	}
	return m.current.text, m.current.lang, true
}

// SetEnabled toggles voice instructions. Disabling stops playback and turns
// Play into a no-op.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()
	if !enabled {
		m.Stop()
	}
}

func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Close stops playback, rejects further Play calls and waits for completion
// watchers to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.Stop()
	m.watchers.Wait()
}

func (m *Manager) CacheStats() CacheStats {
	return m.cache.Stats()
}
