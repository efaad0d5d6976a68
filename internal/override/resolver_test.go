package override

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
)

type memPersistence struct {
	recs map[string]models.OverrideRecord
}

func newMemPersistence() *memPersistence {
	return &memPersistence{recs: make(map[string]models.OverrideRecord)}
}

func (m *memPersistence) SetOverride(rec models.OverrideRecord) error {
	m.recs[rec.Key] = rec
	return nil
}

func (m *memPersistence) AllOverrides() ([]models.OverrideRecord, error) {
	out := make([]models.OverrideRecord, 0, len(m.recs))
	for _, rec := range m.recs {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memPersistence) ClearOverride(key string) error {
	delete(m.recs, key)
	return nil
}

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(newMemPersistence())
	require.NoError(t, err)
	return r
}

func TestOverridePrecedence(t *testing.T) {
	r := newResolver(t)

	// no override: fallback passes through
	res := r.Resolve("usdtry", models.Num(34.2))
	assert.False(t, res.Overridden)
	f, _ := res.Value.Float()
	assert.Equal(t, 34.2, f)

	_, err := r.Set("usdtry", "  34.50 ", "bloomberg")
	require.NoError(t, err)

	res = r.Resolve("usdtry", models.Num(34.2))
	assert.True(t, res.Overridden)
	assert.Equal(t, "bloomberg", res.Source)
	f, ok := res.Value.Float()
	require.True(t, ok)
	assert.Equal(t, 34.5, f)
}

func TestSetRejectsEmptyValue(t *testing.T) {
	r := newResolver(t)

	_, err := r.Set("cds", "   ", "manual")
	require.Error(t, err)
	var appErr *apphttp.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ERR_VALIDATION", appErr.Code)
}

func TestClearRoundTrip(t *testing.T) {
	r := newResolver(t)

	_, err := r.Set("cds", "305", "")
	require.NoError(t, err)
	rec, ok := r.Get("cds")
	require.True(t, ok)
	assert.Equal(t, "manual", rec.Source)

	require.NoError(t, r.Clear("cds"))
	_, ok = r.Get("cds")
	assert.False(t, ok)

	res := r.Resolve("cds", models.Num(300))
	assert.False(t, res.Overridden)
}

func TestClearAbsentIsNoop(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.Clear("gold"))
}

func TestSubscriberNotified(t *testing.T) {
	r := newResolver(t)

	var seen []string
	r.Subscribe(func(key string) { seen = append(seen, key) })

	_, err := r.Set("gold", "2400", "manual")
	require.NoError(t, err)
	require.NoError(t, r.Clear("gold"))
	require.NoError(t, r.Clear("gold")) // absent clear must not notify

	assert.Equal(t, []string{"gold", "gold"}, seen)
}

func TestAllNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	clock := base
	r, err := NewResolver(newMemPersistence(), WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	require.NoError(t, err)

	_, err = r.Set("gold", "2400", "manual")
	require.NoError(t, err)
	_, err = r.Set("cds", "305", "manual")
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "cds", all[0].Key)
	assert.Equal(t, "gold", all[1].Key)
}

func TestMirrorLoadedFromPersistence(t *testing.T) {
	p := newMemPersistence()
	require.NoError(t, p.SetOverride(models.OverrideRecord{
		Key: "pe", Value: "8.2", Source: "manual", SetBy: "user", Timestamp: time.Now(),
	}))

	r, err := NewResolver(p)
	require.NoError(t, err)

	res := r.Resolve("pe", models.NA())
	assert.True(t, res.Overridden)
	f, ok := res.Value.Float()
	require.True(t, ok)
	assert.Equal(t, 8.2, f)
}
