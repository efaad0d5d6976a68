package store

import (
	"errors"
	"sync"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// ErrStale is returned when an update carries a token older than one
// already applied for the same feed.
var ErrStale = errors.New("stale update discarded")

type entry struct {
	data      any
	fetchedAt time.Time
}

// Store is the single in-memory container for the latest snapshot of every
// feed. Writers must obtain a token with Issue before fetching; an Update
// whose token is not newer than the last applied one is rejected, so a slow
// fetch can never clobber a fresher result.
type Store struct {
	mu      sync.RWMutex
	issued  map[models.FeedID]uint64
	applied map[models.FeedID]uint64
	entries map[models.FeedID]entry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		issued:  make(map[models.FeedID]uint64),
		applied: make(map[models.FeedID]uint64),
		entries: make(map[models.FeedID]entry),
	}
}

// Issue reserves the next update token for a feed. Tokens are strictly
// increasing per feed.
func (s *Store) Issue(feed models.FeedID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[feed]++
	return s.issued[feed]
}

// Update replaces a feed snapshot wholesale. The token must come from Issue
// for the same feed; out-of-order completions return ErrStale and leave the
// stored snapshot untouched.
func (s *Store) Update(feed models.FeedID, token uint64, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.applied[feed] {
		return ErrStale
	}
	s.applied[feed] = token
	s.entries[feed] = entry{data: data, fetchedAt: time.Now()}
	return nil
}

// Get returns the latest snapshot for a feed and its fetch time.
func (s *Store) Get(feed models.FeedID) (any, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[feed]
	return e.data, e.fetchedAt, ok
}

// Age returns how long ago a feed was last updated, false when never.
func (s *Store) Age(feed models.FeedID, now time.Time) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[feed]
	if !ok {
		return 0, false
	}
	return now.Sub(e.fetchedAt), true
}

// Market returns the latest market snapshot, nil when none has landed yet.
func (s *Store) Market() *models.MarketSnapshot {
	if d, _, ok := s.Get(models.FeedMarket); ok {
		if snap, ok := d.(*models.MarketSnapshot); ok {
			return snap
		}
	}
	return nil
}

// Macro returns the latest macro snapshot.
func (s *Store) Macro() *models.MacroSnapshot {
	if d, _, ok := s.Get(models.FeedMacro); ok {
		if snap, ok := d.(*models.MacroSnapshot); ok {
			return snap
		}
	}
	return nil
}

// TurkeyMacro returns the latest domestic indicator list.
func (s *Store) TurkeyMacro() *models.TurkeyMacroSnapshot {
	if d, _, ok := s.Get(models.FeedTurkeyMacro); ok {
		if snap, ok := d.(*models.TurkeyMacroSnapshot); ok {
			return snap
		}
	}
	return nil
}

// CBRT returns the latest central-bank tracker snapshot.
func (s *Store) CBRT() *models.CBRTSnapshot {
	if d, _, ok := s.Get(models.FeedCBRT); ok {
		if snap, ok := d.(*models.CBRTSnapshot); ok {
			return snap
		}
	}
	return nil
}

// Calendar returns the latest economic calendar snapshot.
func (s *Store) Calendar() *models.CalendarSnapshot {
	if d, _, ok := s.Get(models.FeedCalendar); ok {
		if snap, ok := d.(*models.CalendarSnapshot); ok {
			return snap
		}
	}
	return nil
}

// EquityRisk returns the latest valuation snapshot.
func (s *Store) EquityRisk() *models.EquityRiskSnapshot {
	if d, _, ok := s.Get(models.FeedEquityRisk); ok {
		if snap, ok := d.(*models.EquityRiskSnapshot); ok {
			return snap
		}
	}
	return nil
}

// Movers returns the latest movers snapshot.
func (s *Store) Movers() *models.MoversSnapshot {
	if d, _, ok := s.Get(models.FeedMovers); ok {
		if snap, ok := d.(*models.MoversSnapshot); ok {
			return snap
		}
	}
	return nil
}

// News returns the latest news snapshot.
func (s *Store) News() *models.NewsSnapshot {
	if d, _, ok := s.Get(models.FeedNews); ok {
		if snap, ok := d.(*models.NewsSnapshot); ok {
			return snap
		}
	}
	return nil
}

// GoldCorr returns the latest gold correlation snapshot.
func (s *Store) GoldCorr() *models.GoldCorrSnapshot {
	if d, _, ok := s.Get(models.FeedGoldCorr); ok {
		if snap, ok := d.(*models.GoldCorrSnapshot); ok {
			return snap
		}
	}
	return nil
}

// Scorecard returns the latest scorecard snapshot.
func (s *Store) Scorecard() *models.ScorecardSnapshot {
	if d, _, ok := s.Get(models.FeedScorecard); ok {
		if snap, ok := d.(*models.ScorecardSnapshot); ok {
			return snap
		}
	}
	return nil
}

// Quote looks a symbol up in the current market snapshot.
func (s *Store) Quote(symbol string) (models.Quote, bool) {
	snap := s.Market()
	if snap == nil {
		return models.Quote{}, false
	}
	q, ok := snap.Quotes[symbol]
	return q, ok
}
