package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/archive"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/render"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/store"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
)

// allFeeds drives the feed-age publisher.
var allFeeds = []models.FeedID{
	models.FeedMarket, models.FeedMacro, models.FeedTurkeyMacro,
	models.FeedCBRT, models.FeedCalendar, models.FeedEquityRisk,
	models.FeedMovers, models.FeedNews, models.FeedGoldCorr,
	models.FeedScorecard,
}

// tier multipliers over the base interval
const (
	mediumFactor   = 3
	slowFactor     = 10
	overrideFactor = 2
)

// Feeds is the collaborator surface the scheduler polls.
type Feeds interface {
	Market(ctx context.Context) (*models.MarketSnapshot, error)
	Macro(ctx context.Context) (*models.MacroSnapshot, error)
	TurkeyMacro(ctx context.Context) (*models.TurkeyMacroSnapshot, error)
	CBRT(ctx context.Context) (*models.CBRTSnapshot, error)
	Calendar(ctx context.Context) (*models.CalendarSnapshot, error)
	EquityRisk(ctx context.Context) (*models.EquityRiskSnapshot, error)
	Movers(ctx context.Context) (*models.MoversSnapshot, error)
	News(ctx context.Context) (*models.NewsSnapshot, error)
	GoldCorr(ctx context.Context) (*models.GoldCorrSnapshot, error)
	Scorecard(ctx context.Context) (*models.ScorecardSnapshot, error)
}

// Metrics is the slice of the recorder the scheduler reports to.
type Metrics interface {
	RecordFetch(feed, outcome string)
	RecordStaleDiscard(feed string)
	RecordFeedAge(feed string, seconds float64)
	RecordFetchLatency(feed string, seconds float64)
}

// Broadcaster pushes a diffed market frame to connected clients.
type Broadcaster interface {
	Broadcast(frame render.Frame)
}

// Scheduler drives the feed refresh loops. Feeds poll on independent tiers:
// fast at the base interval (market, macro), medium at 3x (movers, news),
// slow at 10x (everything long-lived) and the override recheck at 2x. A
// slow response delays only its own feed; failures keep the previous
// snapshot in place.
type Scheduler struct {
	store    *store.Store
	feeds    Feeds
	archiver archive.Archiver
	hub      Broadcaster
	differ   *render.TableDiffer
	recheck  func() error
	logger   *logger.Logger
	metrics  Metrics
	base     time.Duration
	now      func() time.Time

	mu sync.Mutex // guards differ
	wg sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithArchiver enables snapshot archiving on market refreshes.
func WithArchiver(a archive.Archiver) Option {
	return func(s *Scheduler) { s.archiver = a }
}

// WithBroadcaster enables diff frame pushes on market refreshes.
func WithBroadcaster(b Broadcaster) Option {
	return func(s *Scheduler) { s.hub = b }
}

// WithOverrideRecheck sets the override reload hook.
func WithOverrideRecheck(fn func() error) Option {
	return func(s *Scheduler) { s.recheck = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler over the store and feed clients.
func New(st *store.Store, feeds Feeds, base time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  st,
		feeds:  feeds,
		differ: render.NewTableDiffer(),
		logger: logger.Nop(),
		base:   base,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the poll loops. Every feed fetches once immediately, then
// on its tier's ticker until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	fast := s.base
	medium := s.base * mediumFactor
	slow := s.base * slowFactor

	s.loop(ctx, fast, s.refreshMarket)
	s.loop(ctx, fast, func(c context.Context) { fetchInto(s, c, models.FeedMacro, s.feeds.Macro) })
	s.loop(ctx, medium, func(c context.Context) { fetchInto(s, c, models.FeedMovers, s.feeds.Movers) })
	s.loop(ctx, medium, func(c context.Context) { fetchInto(s, c, models.FeedNews, s.feeds.News) })
	s.loop(ctx, slow, func(c context.Context) { fetchInto(s, c, models.FeedTurkeyMacro, s.feeds.TurkeyMacro) })
	s.loop(ctx, slow, func(c context.Context) { fetchInto(s, c, models.FeedCBRT, s.feeds.CBRT) })
	s.loop(ctx, slow, func(c context.Context) { fetchInto(s, c, models.FeedCalendar, s.feeds.Calendar) })
	s.loop(ctx, slow, func(c context.Context) { fetchInto(s, c, models.FeedEquityRisk, s.feeds.EquityRisk) })
	s.loop(ctx, slow, func(c context.Context) { fetchInto(s, c, models.FeedGoldCorr, s.feeds.GoldCorr) })
	s.loop(ctx, slow, func(c context.Context) { fetchInto(s, c, models.FeedScorecard, s.feeds.Scorecard) })

	if s.recheck != nil {
		s.loop(ctx, s.base*overrideFactor, func(context.Context) {
			if err := s.recheck(); err != nil {
				s.logger.Warn("override recheck failed", logger.Error(err))
			}
		})
	}

	if s.metrics != nil {
		s.loop(ctx, fast, func(context.Context) { s.publishFeedAges() })
	}
}

// publishFeedAges refreshes the per-feed age gauge between fetches, so
// the metric keeps climbing while a feed stalls.
func (s *Scheduler) publishFeedAges() {
	now := s.now()
	for _, feed := range allFeeds {
		if age, ok := s.store.Age(feed, now); ok {
			s.metrics.RecordFeedAge(string(feed), age.Seconds())
		}
	}
}

// Wait blocks until all poll loops have exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Kick re-projects the current market snapshot to the stream hub so
// consoles refresh without waiting for the next poll tick. Wired to
// override change notifications.
func (s *Scheduler) Kick() {
	if s.hub == nil {
		return
	}
	snap := s.store.Market()
	if snap == nil {
		return
	}
	s.mu.Lock()
	frame := s.differ.Diff(render.MarketRows(snap))
	s.mu.Unlock()
	s.hub.Broadcast(frame)
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

// fetchInto runs one guarded fetch cycle: issue a token, fetch, apply.
// Failures and stale completions leave the stored snapshot untouched.
func fetchInto[T any](s *Scheduler, ctx context.Context, feed models.FeedID, fetch func(context.Context) (*T, error)) (*T, bool) {
	token := s.store.Issue(feed)
	start := s.now()

	snap, err := fetch(ctx)
	if err != nil {
		s.logger.Warn("feed refresh failed",
			logger.String("feed", string(feed)), logger.Error(err))
		if s.metrics != nil {
			s.metrics.RecordFetch(string(feed), "error")
		}
		return nil, false
	}

	if err := s.store.Update(feed, token, snap); err != nil {
		if errors.Is(err, store.ErrStale) {
			if s.metrics != nil {
				s.metrics.RecordStaleDiscard(string(feed))
			}
			return nil, false
		}
		s.logger.Error("feed update failed",
			logger.String("feed", string(feed)), logger.Error(err))
		return nil, false
	}

	if s.metrics != nil {
		s.metrics.RecordFetch(string(feed), "success")
		s.metrics.RecordFetchLatency(string(feed), s.now().Sub(start).Seconds())
		s.metrics.RecordFeedAge(string(feed), 0)
	}
	return snap, true
}

// refreshMarket is the fast-tier market cycle: fetch, apply, archive the
// applied snapshot and push the diffed frame to the stream hub.
func (s *Scheduler) refreshMarket(ctx context.Context) {
	snap, applied := fetchInto(s, ctx, models.FeedMarket, s.feeds.Market)
	if !applied {
		return
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, snap, s.now()); err != nil {
			s.logger.Warn("snapshot archive failed", logger.Error(err))
		}
	}

	if s.hub != nil {
		s.mu.Lock()
		frame := s.differ.Diff(render.MarketRows(snap))
		s.mu.Unlock()
		s.hub.Broadcast(frame)
	}
}
