package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/audio"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/client"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/config"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/services"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/speech"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/store"
	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config  *config.Config
	log     logging.Logger
	repos   *client.Repositories
	remote  client.Client
	records *store.RecordStore
	prefs   *store.Preferences
	syncer  *services.Syncer
	speech  *speech.Manager
	lang    models.Language

	mu     sync.Mutex
	mode   Mode
	closed bool

	bgCtx    context.Context
	bgCancel context.CancelFunc
	speaking sync.WaitGroup
	once     sync.Once
}

// NewApp opens the local database and wires storage, sync and voice
// playback.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	dev, err := audio.DefaultDevice()
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("error opening audio device: %w", err)
	}

	remote := client.NewHTTPClient(cfg.ServerURL, client.WithTimeout(cfg.RequestTimeout))
	return newApp(ctx, cfg, log, repos, remote, dev), nil
}

func newApp(ctx context.Context, cfg *config.Config, log logging.Logger, repos *client.Repositories, remote client.Client, dev audio.Device) *App {
	records := store.NewRecordStore(repos.KV, log)
	syncer := services.NewSyncer(records, remote, log)
	records.SetSyncTrigger(syncer)

	loader := audio.NewHTTPLoader(dev, cfg.RequestTimeout)
	player := speech.NewManager(loader, speech.NewURLCache(remote.SpeechURL), log)

	prefs := store.NewPreferences(repos.KV, log)
	lang, ok := prefs.Language(ctx)
	if !ok {
		lang = models.DefaultLanguage
	}
	player.SetEnabled(prefs.VoiceEnabled(ctx))

	bgCtx, bgCancel := context.WithCancel(context.Background())
	return &App{
		config:   cfg,
		log:      log,
		repos:    repos,
		remote:   remote,
		records:  records,
		prefs:    prefs,
		syncer:   syncer,
		speech:   player,
		lang:     lang,
		mode:     ModeOffline,
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}
}

// Run starts background sync and the connectivity watcher, then serves the
// REPL on in until the user exits or ctx is done.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.syncer.Run(gctx, a.config.SyncInterval)
		return nil
	})
	g.Go(func() error {
		a.StartOnlineStatusWatcher(gctx, a.config.SyncInterval)
		return nil
	})

	printlnFn("Welcome to FieldKeeper (type 'help' for commands)")

	runREPL(gctx, a, a.getStatus, readLines(gctx, in))
	cancel()
	return g.Wait()
}

// Close stops playback and background sync and closes the database. It is
// safe to call more than once.
func (a *App) Close() {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()

		a.bgCancel()
		a.speech.Close()
		a.speaking.Wait()
		a.syncer.Close()
		if err := a.repos.Close(); err != nil {
			a.log.Error(context.Background(), "failed to close database", "err", err)
		}
	})
}

func (a *App) setMode(ctx context.Context, mode Mode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == mode {
		return false
	}
	a.mode = mode
	a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	return true
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the server every interval. Coming back
// online triggers a sync pass.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.checkOnline(ctx)
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.remote.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	if a.setMode(ctx, ModeOnline) {
		a.syncer.Trigger()
	}
}

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s, %d pending, %s)", a.Mode(), a.records.PendingCount(a.bgCtx), a.language())
}

func (a *App) language() models.Language {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lang
}

// speak plays text in the current language without blocking the REPL. The
// playback token is taken here, so calls win in the order they were made.
func (a *App) speak(text string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	req := a.speech.Reserve(text, a.lang)
	if req == nil {
		a.mu.Unlock()
		return
	}
	a.speaking.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.speaking.Done()
		err := req.Play(a.bgCtx)
		if err != nil && !errors.Is(err, common.ErrStaleRequest) {
			a.log.Debug(a.bgCtx, "voice instruction skipped", "err", err)
		}
	}()
}

func (a *App) instruct(key string) {
	if text, ok := instruction(a.language(), key); ok {
		a.speak(text)
	}
}
