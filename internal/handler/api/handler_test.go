package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/command"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/override"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/registry"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/store"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/tickets"
)

type memOverrideStore struct {
	records []models.OverrideRecord
}

func (m *memOverrideStore) SetOverride(rec models.OverrideRecord) error {
	for i, r := range m.records {
		if r.Key == rec.Key {
			m.records[i] = rec
			return nil
		}
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memOverrideStore) AllOverrides() ([]models.OverrideRecord, error) {
	return append([]models.OverrideRecord(nil), m.records...), nil
}

func (m *memOverrideStore) ClearOverride(key string) error {
	for i, r := range m.records {
		if r.Key == key {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type memTicketStore struct {
	tickets []models.Ticket
}

func (m *memTicketStore) SaveTicket(itemsJSON, notes string, at time.Time) (int64, error) {
	id := int64(len(m.tickets) + 1)
	m.tickets = append(m.tickets, models.Ticket{
		ID: id, Timestamp: at, ItemsJSON: itemsJSON, Status: "open", Notes: notes,
	})
	return id, nil
}

func (m *memTicketStore) Tickets(limit int) ([]models.Ticket, error) {
	if limit > len(m.tickets) {
		limit = len(m.tickets)
	}
	out := make([]models.Ticket, 0, limit)
	for i := len(m.tickets) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.tickets[i])
	}
	return out, nil
}

type stubKnowledge struct {
	doc map[string]any
}

func (s *stubKnowledge) Knowledge(_ context.Context, key string) (map[string]any, error) {
	out := map[string]any{"key": key}
	for k, v := range s.doc {
		out[k] = v
	}
	return out, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *store.Store, *override.Resolver) {
	t.Helper()

	st := store.New()
	resolver, err := override.NewResolver(&memOverrideStore{})
	require.NoError(t, err)

	reg := registry.New(registry.WithOverrides(resolver))
	dispatcher := command.NewDispatcher(reg, resolver)
	ticketSvc := tickets.NewService(&memTicketStore{})

	now := func() time.Time {
		// Tuesday morning, Istanbul session open.
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}

	h := NewHandler(st, reg, resolver, dispatcher, ticketSvc,
		WithKnowledge(&stubKnowledge{doc: map[string]any{"summary": "spot lira"}}),
		WithClock(now),
		WithScorecardThresholds(25, -25),
	)

	e := echo.New()
	h.RegisterRoutes(e)
	return e, st, resolver
}

func seedMarket(t *testing.T, st *store.Store) {
	t.Helper()
	token := st.Issue(models.FeedMarket)
	err := st.Update(models.FeedMarket, token, &models.MarketSnapshot{
		Quotes: map[string]models.Quote{
			"TRY=X": {Symbol: "TRY=X", Name: "USD/TRY", Price: models.Num(34.5), Source: "live"},
			"GC=F":  {Symbol: "GC=F", Name: "Gold", Price: models.Num(2412.5), Source: "live"},
		},
		Categories: map[string][]string{"fx": {"TRY=X"}, "commodities": {"GC=F"}},
		TapeOrder:  []string{"TRY=X", "GC=F"},
	})
	require.NoError(t, err)
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	envelope := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestGetMarket(t *testing.T) {
	e, st, _ := newTestServer(t)
	seedMarket(t, st)

	rec, env := doJSON(t, e, http.MethodGet, "/api/market", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp marketResponse
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.Equal(t, []string{"TRY=X", "GC=F"}, resp.TickerTape)
	assert.Equal(t, "USD/TRY", resp.Data["TRY=X"].Name)

	ist, ok := resp.Status["ist"]
	require.True(t, ok)
	assert.True(t, ist.IsOpen)
	assert.False(t, resp.Status["ny"].IsOpen)
}

func TestGetMarketEmptyStore(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/market", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp marketResponse
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Status)
}

func TestGetEntity(t *testing.T) {
	e, st, _ := newTestServer(t)
	seedMarket(t, st)

	rec, env := doJSON(t, e, http.MethodGet, "/api/entity/usdtry", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Key     string          `json:"key"`
		Name    string          `json:"name"`
		Value   string          `json:"value"`
		Related []models.Entity `json:"related"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.Equal(t, "usdtry", resp.Key)
	assert.Equal(t, "34.5", resp.Value)
	assert.NotEmpty(t, resp.Related)
}

func TestGetEntityUnknown(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/api/entity/nothere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
}

func TestSetAndClearOverride(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/entity/usdtry/set", `{"value":"35.10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var set models.OverrideRecord
	require.NoError(t, json.Unmarshal(env["data"], &set))
	assert.Equal(t, "usdtry", set.Key)
	assert.Equal(t, "35.10", set.Value)
	assert.Equal(t, "manual", set.Source)

	rec, env = doJSON(t, e, http.MethodGet, "/api/overrides", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.OverrideRecord
	require.NoError(t, json.Unmarshal(env["data"], &all))
	require.Len(t, all, 1)

	rec, _ = doJSON(t, e, http.MethodPost, "/api/entity/usdtry/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = doJSON(t, e, http.MethodGet, "/api/overrides", "")
	require.NoError(t, json.Unmarshal(env["data"], &all))
	assert.Empty(t, all)
}

func TestSetOverrideMissingValue(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/entity/usdtry/set", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetOverrideUnknownEntity(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/entity/nothere/set", `{"value":"1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOverrideWinsInEntityValue(t *testing.T) {
	e, st, _ := newTestServer(t)
	seedMarket(t, st)

	_, _ = doJSON(t, e, http.MethodPost, "/api/entity/usdtry/set", `{"value":"40"}`)

	_, env := doJSON(t, e, http.MethodGet, "/api/entity/usdtry", "")
	var resp struct {
		Value    string                 `json:"value"`
		Override *models.OverrideRecord `json:"override"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.Equal(t, "40", resp.Value)
	require.NotNil(t, resp.Override)
}

func TestPostCommandCompare(t *testing.T) {
	e, st, _ := newTestServer(t)
	seedMarket(t, st)

	rec, env := doJSON(t, e, http.MethodPost, "/api/command", `{"input":"gold vs usdtry"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Kind       string          `json:"kind"`
		Comparison json.RawMessage `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.Equal(t, "compare", resp.Kind)
	assert.NotEmpty(t, resp.Comparison)
}

func TestPostCommandSet(t *testing.T) {
	e, _, resolver := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/command", `{"input":"usdtry set 36.20"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok := resolver.Get("usdtry")
	require.True(t, ok)
	assert.Equal(t, "36.20", got.Value)
}

func TestPostCommandEmpty(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/command", `{"input":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScorecardNoFeed(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/scorecard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Signal string  `json:"signal"`
		Gauge  float64 `json:"gauge"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &resp))
	assert.Equal(t, "N/A", resp.Signal)
	assert.InDelta(t, 0.5, resp.Gauge, 1e-9)
}

func TestSearchRegistry(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/registry/search?q=inflation", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []models.SearchMatch
	require.NoError(t, json.Unmarshal(env["data"], &matches))
	assert.NotEmpty(t, matches)
}

func TestTicketsRoundTrip(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/tickets",
		`{"items":[{"key":"usdtry","issue":"stale quote"}],"notes":"check feed"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]int64
	require.NoError(t, json.Unmarshal(env["data"], &created))
	assert.Equal(t, int64(1), created["ticket_id"])

	rec, env = doJSON(t, e, http.MethodGet, "/api/tickets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Ticket
	require.NoError(t, json.Unmarshal(env["data"], &list))
	require.Len(t, list, 1)
	assert.Equal(t, "check feed", list[0].Notes)
}

func TestTicketsEmptyItems(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/tickets", `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubArchive struct {
	date  string
	limit int
}

func (s *stubArchive) TopMoversByDate(date string, limit int) (models.MoverLists, error) {
	s.date, s.limit = date, limit
	return models.MoverLists{
		Gainers: []models.Mover{{Symbol: "XU100.IS", ChangePct: models.Num(2.4)}},
	}, nil
}

func TestGetMoversArchive(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/api/movers/archive?date=bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No archive wired: valid date returns empty lists.
	rec, env := doJSON(t, e, http.MethodGet, "/api/movers/archive?date=2026-08-29", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var lists models.MoverLists
	require.NoError(t, json.Unmarshal(env["data"], &lists))
	assert.Empty(t, lists.Gainers)
}

func TestGetMoversArchiveWired(t *testing.T) {
	st := store.New()
	resolver, err := override.NewResolver(&memOverrideStore{})
	require.NoError(t, err)
	reg := registry.New(registry.WithOverrides(resolver))

	arch := &stubArchive{}
	h := NewHandler(st, reg, resolver,
		command.NewDispatcher(reg, resolver),
		tickets.NewService(&memTicketStore{}),
		WithMoversArchive(arch),
	)
	e := echo.New()
	h.RegisterRoutes(e)

	rec, env := doJSON(t, e, http.MethodGet, "/api/movers/archive?date=2026-08-29&limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-08-29", arch.date)
	assert.Equal(t, 3, arch.limit)

	var lists models.MoverLists
	require.NoError(t, json.Unmarshal(env["data"], &lists))
	require.Len(t, lists.Gainers, 1)
	assert.Equal(t, "XU100.IS", lists.Gainers[0].Symbol)
}

func TestGetKnowledge(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/knowledge/usdtry", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(env["data"], &doc))
	assert.Equal(t, "usdtry", doc["key"])
	assert.Equal(t, "spot lira", doc["summary"])
}
