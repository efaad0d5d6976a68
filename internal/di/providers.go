package di

import (
	"context"
	"fmt"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/archive"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/command"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/feeds"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/handler/api"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/handler/stream"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/override"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/poll"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/registry"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/storage"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/store"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/tickets"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/cache"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/config"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
	applogger "github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/metrics"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCache creates the feed cache: Redis when enabled, in-process
// otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	c, err := cache.NewRedisCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideHTTPClient creates the outbound collaborator client.
func ProvideHTTPClient(cfg *config.Config) *apphttp.Client {
	return apphttp.NewClient(apphttp.WithTimeout(cfg.Feeds.Timeout))
}

// ProvideStorage opens the SQLite store for overrides, tickets and
// the local archive.
func ProvideStorage(cfg *config.Config) (*storage.Store, error) {
	st, err := storage.NewStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return st, nil
}

// ProvideResolver creates the override resolver backed by SQLite.
func ProvideResolver(st *storage.Store, l *applogger.Logger, m *metrics.Recorder) (*override.Resolver, error) {
	r, err := override.NewResolver(st,
		override.WithLogger(l),
		override.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("override resolver: %w", err)
	}
	return r, nil
}

// ProvideRegistry creates the entity registry with override lookups wired in.
func ProvideRegistry(r *override.Resolver) *registry.Registry {
	return registry.New(registry.WithOverrides(r))
}

// ProvideDispatcher creates the command dispatcher.
func ProvideDispatcher(reg *registry.Registry, r *override.Resolver, l *applogger.Logger, m *metrics.Recorder) *command.Dispatcher {
	return command.NewDispatcher(reg, r,
		command.WithLogger(l),
		command.WithMetrics(m),
	)
}

// ProvideFeeds creates the collaborator feed service.
func ProvideFeeds(client *apphttp.Client, cfg *config.Config, c cache.Service, l *applogger.Logger) *feeds.Service {
	return feeds.NewService(client, cfg.Feeds.BaseURL,
		feeds.WithCache(c),
		feeds.WithKnowledgeURL(cfg.Feeds.KnowledgeURL),
		feeds.WithTTLs(feeds.TTLs{
			Market:      cfg.Feeds.CacheTTL.Market,
			Macro:       cfg.Feeds.CacheTTL.Macro,
			TurkeyMacro: cfg.Feeds.CacheTTL.TurkeyMacro,
			Slow:        cfg.Feeds.CacheTTL.Slow,
		}),
		feeds.WithLogger(l),
	)
}

// ProvideStore creates the in-memory snapshot store.
func ProvideStore() *store.Store {
	return store.New()
}

// ProvideArchiver builds the snapshot archiver for the configured backend.
func ProvideArchiver(cfg *config.Config, st *storage.Store) (archive.Archiver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := archive.New(ctx, cfg, st)
	if err != nil {
		return nil, fmt.Errorf("archiver: %w", err)
	}
	return a, nil
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(l *applogger.Logger) *stream.Hub {
	return stream.NewHub(stream.WithLogger(l))
}

// ProvideScheduler creates the poll scheduler with archiving, broadcast
// and the override recheck tier wired in.
func ProvideScheduler(
	st *store.Store,
	svc *feeds.Service,
	cfg *config.Config,
	a archive.Archiver,
	hub *stream.Hub,
	r *override.Resolver,
	l *applogger.Logger,
	m *metrics.Recorder,
) *poll.Scheduler {
	sched := poll.New(st, svc, cfg.Poll.BaseInterval,
		poll.WithArchiver(a),
		poll.WithBroadcaster(hub),
		poll.WithOverrideRecheck(r.Reload),
		poll.WithLogger(l),
		poll.WithMetrics(m),
	)
	r.Subscribe(func(string) { sched.Kick() })
	return sched
}

// ProvideTickets creates the data-quality ticket service.
func ProvideTickets(st *storage.Store, l *applogger.Logger) *tickets.Service {
	return tickets.NewService(st, tickets.WithLogger(l))
}

// ProvideAPIHandler creates the dashboard API handler.
func ProvideAPIHandler(
	st *store.Store,
	reg *registry.Registry,
	r *override.Resolver,
	d *command.Dispatcher,
	t *tickets.Service,
	svc *feeds.Service,
	db *storage.Store,
	cfg *config.Config,
	l *applogger.Logger,
) *api.Handler {
	return api.NewHandler(st, reg, r, d, t,
		api.WithKnowledge(svc),
		api.WithMoversArchive(db),
		api.WithScorecardThresholds(cfg.Scorecard.ThresholdHigh, cfg.Scorecard.ThresholdLow),
		api.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.Handler,
	hub *stream.Hub,
	sched *poll.Scheduler,
	a archive.Archiver,
	st *storage.Store,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, h, hub, sched, a, st, c)
}
