package feeds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/pkg/cache"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
)

func marketPayload() map[string]any {
	return map[string]any{
		"data": map[string]any{
			"GC=F":  map[string]any{"symbol": "GC=F", "name": "Gold", "price": 2400.0, "prev_close": 2380.0, "change_pct": 0.84},
			"TRY=X": map[string]any{"symbol": "TRY=X", "name": "USD/TRY", "price": 34.0, "prev_close": 34.0, "change_pct": 0.0},
		},
		"categories":  map[string]any{"commodities": []string{"GC=F"}, "fx": []string{"TRY=X"}},
		"ticker_tape": []string{"TRY=X", "GC=F"},
	}
}

func newServer(t *testing.T, path string, payload any, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMarketInjectsGramGold(t *testing.T) {
	srv := newServer(t, "/market", marketPayload(), nil)
	s := NewService(apphttp.NewClient(), srv.URL)

	snap, err := s.Market(context.Background())
	require.NoError(t, err)

	gg, ok := snap.Quotes["gram_gold"]
	require.True(t, ok)
	assert.Equal(t, "CALC", gg.Source)
	f, ok := gg.Price.Float()
	require.True(t, ok)
	assert.InDelta(t, 2400*34/31.1035, f, 1e-6)
	assert.Contains(t, snap.Categories["commodities"], "gram_gold")
}

func TestMarketGramGoldSkippedWhenInputsMissing(t *testing.T) {
	payload := marketPayload()
	data := payload["data"].(map[string]any)
	delete(data, "TRY=X")
	srv := newServer(t, "/market", payload, nil)
	s := NewService(apphttp.NewClient(), srv.URL)

	snap, err := s.Market(context.Background())
	require.NoError(t, err)
	_, ok := snap.Quotes["gram_gold"]
	assert.False(t, ok)
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int64
	srv := newServer(t, "/macro", map[string]any{
		"policy_rates": map[string]any{"aofm": 50.0},
	}, &hits)

	mem := cache.NewMemoryCache()
	s := NewService(apphttp.NewClient(), srv.URL,
		WithCache(mem),
		WithTTLs(TTLs{Macro: time.Minute}))

	for i := 0; i < 3; i++ {
		snap, err := s.Macro(context.Background())
		require.NoError(t, err)
		f, ok := snap.PolicyRates["aofm"].Float()
		require.True(t, ok)
		assert.Equal(t, 50.0, f)
	}
	assert.Equal(t, int64(1), hits.Load())
}

func TestFetchFailureWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	s := NewService(apphttp.NewClient(), srv.URL)

	_, err := s.CBRT(context.Background())
	require.Error(t, err)
	var appErr *apphttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_FETCH_FAILED", appErr.Code)
}

func TestEquityRiskDerivedColumns(t *testing.T) {
	srv := newServer(t, "/equity-risk", map[string]any{
		"pe":     8.0,
		"tr_10y": 27.5,
	}, nil)
	s := NewService(apphttp.NewClient(), srv.URL)

	snap, err := s.EquityRisk(context.Background())
	require.NoError(t, err)

	ey, ok := snap.EarningsYield.Float()
	require.True(t, ok)
	assert.InDelta(t, 12.5, ey, 1e-9)
	erp, ok := snap.ERP.Float()
	require.True(t, ok)
	assert.InDelta(t, -15, erp, 1e-9)
}

func TestNAValuesSurviveTransport(t *testing.T) {
	srv := newServer(t, "/macro", map[string]any{
		"bonds": map[string]any{"tr_10y": "N/A", "us_10y": 4.1},
	}, nil)
	s := NewService(apphttp.NewClient(), srv.URL)

	snap, err := s.Macro(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Bonds["tr_10y"].IsNA())
	f, ok := snap.Bonds["us_10y"].Float()
	require.True(t, ok)
	assert.Equal(t, 4.1, f)
}

func TestKnowledgeProxy(t *testing.T) {
	srv := newServer(t, "/knowledge/usdtry", map[string]any{
		"key":     "usdtry",
		"summary": "currency pair",
	}, nil)
	s := NewService(apphttp.NewClient(), srv.URL, WithKnowledgeURL(srv.URL))

	doc, err := s.Knowledge(context.Background(), "usdtry")
	require.NoError(t, err)
	assert.Equal(t, "currency pair", doc["summary"])
}

func TestMoversSnapshotDecodes(t *testing.T) {
	srv := newServer(t, "/movers", map[string]any{
		"by_index": map[string]any{
			"bist30": map[string]any{
				"gainers": []any{map[string]any{"symbol": "THYAO", "price": 300.0, "change_pct": 4.2}},
			},
		},
	}, nil)
	s := NewService(apphttp.NewClient(), srv.URL)

	snap, err := s.Movers(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.ByIndex["bist30"].Gainers, 1)
	assert.Equal(t, "THYAO", snap.ByIndex["bist30"].Gainers[0].Symbol)
}
