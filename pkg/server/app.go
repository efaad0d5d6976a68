package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/archive"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/handler/api"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/handler/stream"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/poll"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/storage"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/cache"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/config"
	xhttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
	applogger "github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    *api.Handler
	hub        *stream.Hub
	scheduler  *poll.Scheduler
	archiver   archive.Archiver
	store      *storage.Store
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler *api.Handler,
	hub *stream.Hub,
	scheduler *poll.Scheduler,
	archiver archive.Archiver,
	store *storage.Store,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		hub:       hub,
		scheduler: scheduler,
		archiver:  archiver,
		store:     store,
		cache:     cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	a.hub.RegisterRoutes(a.httpServer.Echo())

	a.scheduler.Start(ctx)
	a.logger.Info("poll scheduler started",
		applogger.Duration("base_interval", a.cfg.Poll.BaseInterval))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server listening", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.scheduler.Wait()

	shutdownCtx, cancelTO := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancelTO()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.archiver != nil {
		if err := a.archiver.Close(); err != nil {
			a.logger.Warn("archiver close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("storage close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
