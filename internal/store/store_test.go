package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

func TestUpdateAndGet(t *testing.T) {
	s := New()

	tok := s.Issue(models.FeedMarket)
	snap := &models.MarketSnapshot{Quotes: map[string]models.Quote{
		"usdtry": {Symbol: "usdtry", Price: models.Num(34.5)},
	}}
	require.NoError(t, s.Update(models.FeedMarket, tok, snap))

	got := s.Market()
	require.NotNil(t, got)
	assert.Equal(t, 34.5, mustFloat(t, got.Quotes["usdtry"].Price))
}

func TestStaleUpdateDiscarded(t *testing.T) {
	s := New()

	slow := s.Issue(models.FeedMacro)
	fast := s.Issue(models.FeedMacro)

	fresh := &models.MacroSnapshot{Bonds: map[string]models.Value{"tr_10y": models.Num(28)}}
	require.NoError(t, s.Update(models.FeedMacro, fast, fresh))

	old := &models.MacroSnapshot{Bonds: map[string]models.Value{"tr_10y": models.Num(27)}}
	err := s.Update(models.FeedMacro, slow, old)
	assert.ErrorIs(t, err, ErrStale)

	got := s.Macro()
	require.NotNil(t, got)
	assert.Equal(t, 28.0, mustFloat(t, got.Bonds["tr_10y"]))
}

func TestTokensAreIndependentPerFeed(t *testing.T) {
	s := New()

	m1 := s.Issue(models.FeedMarket)
	n1 := s.Issue(models.FeedNews)

	require.NoError(t, s.Update(models.FeedNews, n1, &models.NewsSnapshot{}))
	require.NoError(t, s.Update(models.FeedMarket, m1, &models.MarketSnapshot{}))
}

func TestGetMissingFeed(t *testing.T) {
	s := New()

	_, _, ok := s.Get(models.FeedCBRT)
	assert.False(t, ok)
	assert.Nil(t, s.CBRT())
	assert.Nil(t, s.Scorecard())
}

func TestQuoteLookup(t *testing.T) {
	s := New()

	_, ok := s.Quote("gold")
	assert.False(t, ok)

	tok := s.Issue(models.FeedMarket)
	require.NoError(t, s.Update(models.FeedMarket, tok, &models.MarketSnapshot{
		Quotes: map[string]models.Quote{"gold": {Symbol: "gold", Price: models.Num(2400)}},
	}))

	q, ok := s.Quote("gold")
	require.True(t, ok)
	assert.Equal(t, "gold", q.Symbol)
}

func mustFloat(t *testing.T, v models.Value) float64 {
	t.Helper()
	f, ok := v.Float()
	require.True(t, ok)
	return f
}
