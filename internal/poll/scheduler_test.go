package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/render"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/store"
)

type stubFeeds struct {
	mu        sync.Mutex
	market    *models.MarketSnapshot
	marketErr error
}

func (f *stubFeeds) Market(context.Context) (*models.MarketSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.marketErr != nil {
		return nil, f.marketErr
	}
	return f.market, nil
}

func (f *stubFeeds) Macro(context.Context) (*models.MacroSnapshot, error) {
	return &models.MacroSnapshot{}, nil
}
func (f *stubFeeds) TurkeyMacro(context.Context) (*models.TurkeyMacroSnapshot, error) {
	return &models.TurkeyMacroSnapshot{}, nil
}
func (f *stubFeeds) CBRT(context.Context) (*models.CBRTSnapshot, error) {
	return &models.CBRTSnapshot{}, nil
}
func (f *stubFeeds) Calendar(context.Context) (*models.CalendarSnapshot, error) {
	return &models.CalendarSnapshot{}, nil
}
func (f *stubFeeds) EquityRisk(context.Context) (*models.EquityRiskSnapshot, error) {
	return &models.EquityRiskSnapshot{}, nil
}
func (f *stubFeeds) Movers(context.Context) (*models.MoversSnapshot, error) {
	return &models.MoversSnapshot{}, nil
}
func (f *stubFeeds) News(context.Context) (*models.NewsSnapshot, error) {
	return &models.NewsSnapshot{}, nil
}
func (f *stubFeeds) GoldCorr(context.Context) (*models.GoldCorrSnapshot, error) {
	return &models.GoldCorrSnapshot{}, nil
}
func (f *stubFeeds) Scorecard(context.Context) (*models.ScorecardSnapshot, error) {
	return &models.ScorecardSnapshot{}, nil
}

type captureHub struct {
	mu     sync.Mutex
	frames []render.Frame
}

func (h *captureHub) Broadcast(frame render.Frame) {
	h.mu.Lock()
	h.frames = append(h.frames, frame)
	h.mu.Unlock()
}

func marketSnap(price float64) *models.MarketSnapshot {
	return &models.MarketSnapshot{
		Quotes: map[string]models.Quote{
			"usdtry": {Symbol: "usdtry", Name: "USD/TRY", Price: models.Num(price)},
		},
		Categories: map[string][]string{"fx": {"usdtry"}},
		TapeOrder:  []string{"usdtry"},
	}
}

func TestMarketRefreshArchivesAndBroadcasts(t *testing.T) {
	st := store.New()
	feeds := &stubFeeds{market: marketSnap(34.5)}
	hub := &captureHub{}
	s := New(st, feeds, time.Second, WithBroadcaster(hub))

	s.refreshMarket(context.Background())
	require.NotNil(t, st.Market())

	hub.mu.Lock()
	require.Len(t, hub.frames, 1)
	assert.True(t, hub.frames[0].Rebuilt)
	hub.mu.Unlock()

	// second refresh with a higher price diffs against the first
	feeds.mu.Lock()
	feeds.market = marketSnap(35.0)
	feeds.mu.Unlock()
	s.refreshMarket(context.Background())

	hub.mu.Lock()
	require.Len(t, hub.frames, 2)
	assert.False(t, hub.frames[1].Rebuilt)
	require.Len(t, hub.frames[1].Rows, 1)
	assert.Equal(t, render.HighlightUp, hub.frames[1].Rows[0].Highlight)
	hub.mu.Unlock()
}

type captureMetrics struct {
	mu   sync.Mutex
	ages map[string]float64
}

func (m *captureMetrics) RecordFetch(string, string)         {}
func (m *captureMetrics) RecordStaleDiscard(string)          {}
func (m *captureMetrics) RecordFetchLatency(string, float64) {}

func (m *captureMetrics) RecordFeedAge(feed string, seconds float64) {
	m.mu.Lock()
	if m.ages == nil {
		m.ages = make(map[string]float64)
	}
	m.ages[feed] = seconds
	m.mu.Unlock()
}

func TestFeedAgeGaugeTracksSnapshotAge(t *testing.T) {
	st := store.New()
	feeds := &stubFeeds{market: marketSnap(34.5)}
	rec := &captureMetrics{}

	now := time.Now()
	s := New(st, feeds, time.Second,
		WithMetrics(rec),
		WithClock(func() time.Time { return now }))

	// No snapshots yet: nothing published.
	s.publishFeedAges()
	rec.mu.Lock()
	assert.Empty(t, rec.ages)
	rec.mu.Unlock()

	s.refreshMarket(context.Background())

	now = now.Add(30 * time.Second)
	s.publishFeedAges()

	rec.mu.Lock()
	age, ok := rec.ages[string(models.FeedMarket)]
	rec.mu.Unlock()
	require.True(t, ok)
	assert.InDelta(t, 30, age, 1)
}

func TestKickRebroadcastsCurrentSnapshot(t *testing.T) {
	st := store.New()
	feeds := &stubFeeds{market: marketSnap(34.5)}
	hub := &captureHub{}
	s := New(st, feeds, time.Second, WithBroadcaster(hub))

	// Kick before any refresh is a no-op.
	s.Kick()
	hub.mu.Lock()
	assert.Empty(t, hub.frames)
	hub.mu.Unlock()

	s.refreshMarket(context.Background())
	s.Kick()

	hub.mu.Lock()
	require.Len(t, hub.frames, 2)
	require.Len(t, hub.frames[1].Rows, 1)
	assert.Equal(t, render.HighlightNone, hub.frames[1].Rows[0].Highlight)
	hub.mu.Unlock()
}

func TestFailedFetchKeepsSnapshot(t *testing.T) {
	st := store.New()
	feeds := &stubFeeds{market: marketSnap(34.5)}
	s := New(st, feeds, time.Second)

	s.refreshMarket(context.Background())
	require.NotNil(t, st.Market())
	before, _ := st.Market().Quotes["usdtry"].Price.Float()

	feeds.mu.Lock()
	feeds.marketErr = errors.New("collaborator down")
	feeds.mu.Unlock()
	s.refreshMarket(context.Background())

	after, _ := st.Market().Quotes["usdtry"].Price.Float()
	assert.Equal(t, before, after)
}

func TestStartPollsAllFeedsOnce(t *testing.T) {
	st := store.New()
	feeds := &stubFeeds{market: marketSnap(34.5)}
	s := New(st, feeds, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		if st.Market() != nil && st.Macro() != nil && st.Scorecard() != nil &&
			st.News() != nil && st.CBRT() != nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("feeds not populated in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	s.Wait()
}

func TestOverrideRecheckRuns(t *testing.T) {
	st := store.New()
	feeds := &stubFeeds{market: marketSnap(34.5)}

	var mu sync.Mutex
	calls := 0
	s := New(st, feeds, time.Hour, WithOverrideRecheck(func() error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("recheck never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	s.Wait()
}
