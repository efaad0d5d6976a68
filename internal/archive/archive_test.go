package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/storage"
)

func TestEntriesSkipNonNumericPrices(t *testing.T) {
	at := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	snap := &models.MarketSnapshot{Quotes: map[string]models.Quote{
		"usdtry": {Price: models.Num(34.5), ChangePct: models.Num(0.2)},
		"rating": {Price: models.Parse("B+")},
		"stale":  {Price: models.NA()},
	}}

	rows := entries(snap, at)
	require.Len(t, rows, 1)
	assert.Equal(t, "usdtry", rows[0].Symbol)
	assert.Equal(t, 34.5, rows[0].Price)
	require.NotNil(t, rows[0].ChangePct)
	assert.Equal(t, 0.2, *rows[0].ChangePct)
	assert.Equal(t, "2026-08-30 10:00:00", rows[0].Timestamp)
}

func TestEntriesNilSnapshot(t *testing.T) {
	assert.Empty(t, entries(nil, time.Now()))
}

func TestSQLiteArchiver(t *testing.T) {
	store, err := storage.NewStore(t.TempDir() + "/terminal.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	a := NewSQLiteArchiver(store)
	at := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	snap := &models.MarketSnapshot{Quotes: map[string]models.Quote{
		"thyao": {Price: models.Num(300), ChangePct: models.Num(4.2)},
	}}
	require.NoError(t, a.Archive(context.Background(), snap, at))
	require.NoError(t, a.Close())

	lists, err := store.TopMoversByDate("2026-08-30", 5)
	require.NoError(t, err)
	require.Len(t, lists.Gainers, 1)
	assert.Equal(t, "thyao", lists.Gainers[0].Symbol)
}
