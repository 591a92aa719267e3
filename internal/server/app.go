// Package server initializes and runs the FieldKeeper server: it opens
// record storage, wires the records service and the speech proxy, and
// serves the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/config"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	repos     repomanager.RepositoryManager
	records   *services.RecordService
	forwarder *services.TTSForwarder
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "DATABASE_URL not set, records are kept in memory")
	}
	if c.TTSAPIKey == "" {
		logger.Warn(ctx, "SARVAM_API_KEY not set, speech requests will be rejected by the vendor")
	}

	return &App{
		config:    c,
		logger:    logger,
		repos:     repos,
		records:   services.NewRecordService(repos.Records(), logger),
		forwarder: services.NewTTSForwarder(c, logger),
	}, nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, or until ctx is done, then
// shuts the HTTP server down and closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	srv := httpapi.NewHTTPServer(app.config.Addr, app.logger, app.records, app.forwarder,
		httpapi.NewRegistry(), app.config.ShutdownTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	err := g.Wait()
	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(context.Background(), "failed to close storage", "err", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
