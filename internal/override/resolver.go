package override

import (
	"strings"
	"sync"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/metrics"
)

// Persistence is the slice of the storage layer the resolver needs.
type Persistence interface {
	SetOverride(rec models.OverrideRecord) error
	AllOverrides() ([]models.OverrideRecord, error)
	ClearOverride(key string) error
}

// Subscriber is notified after every successful set or clear.
type Subscriber func(key string)

// Resolver owns manual overrides. Persisted rows are mirrored in memory so
// Resolve on the hot render path never touches the database. Overrides take
// absolute precedence over feed data regardless of freshness.
type Resolver struct {
	store   Persistence
	logger  *logger.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu     sync.RWMutex
	active map[string]models.OverrideRecord
	subs   []Subscriber
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Resolver) { r.metrics = m }
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver loads active overrides from persistence into the mirror.
func NewResolver(store Persistence, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		store:  store,
		logger: logger.Nop(),
		now:    time.Now,
		active: make(map[string]models.OverrideRecord),
	}
	for _, opt := range opts {
		opt(r)
	}

	recs, err := store.AllOverrides()
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		r.active[rec.Key] = rec
	}
	r.gauge()
	return r, nil
}

// Reload re-reads active overrides from persistence into the mirror. The
// poll scheduler calls this periodically so edits made outside the process
// become visible.
func (r *Resolver) Reload() error {
	recs, err := r.store.AllOverrides()
	if err != nil {
		return err
	}
	next := make(map[string]models.OverrideRecord, len(recs))
	for _, rec := range recs {
		next[rec.Key] = rec
	}
	r.mu.Lock()
	r.active = next
	r.mu.Unlock()
	r.gauge()
	return nil
}

// Subscribe registers a change callback. Callbacks run synchronously on the
// mutating goroutine, after the mirror is updated.
func (r *Resolver) Subscribe(fn Subscriber) {
	r.mu.Lock()
	r.subs = append(r.subs, fn)
	r.mu.Unlock()
}

// Set stores a manual value for an entity key. The raw text is trimmed;
// an empty result is rejected.
func (r *Resolver) Set(key, rawText, sourceLabel string) (models.OverrideRecord, error) {
	value := strings.TrimSpace(rawText)
	if value == "" {
		return models.OverrideRecord{}, apphttp.ValidationError("value", "override value must not be empty")
	}
	source := strings.TrimSpace(sourceLabel)
	if source == "" {
		source = "manual"
	}

	rec := models.OverrideRecord{
		Key:       key,
		Value:     value,
		Source:    source,
		SetBy:     "user",
		Timestamp: r.now(),
	}
	if err := r.store.SetOverride(rec); err != nil {
		return models.OverrideRecord{}, err
	}

	r.mu.Lock()
	r.active[key] = rec
	subs := append([]Subscriber(nil), r.subs...)
	r.mu.Unlock()

	r.logger.Info("override set",
		logger.String("key", key),
		logger.String("source", source))
	r.gauge()
	for _, fn := range subs {
		fn(key)
	}
	return rec, nil
}

// Clear deactivates an override. Clearing a key without one is a no-op.
func (r *Resolver) Clear(key string) error {
	if err := r.store.ClearOverride(key); err != nil {
		return err
	}

	r.mu.Lock()
	_, had := r.active[key]
	delete(r.active, key)
	subs := append([]Subscriber(nil), r.subs...)
	r.mu.Unlock()

	if !had {
		return nil
	}
	r.logger.Info("override cleared", logger.String("key", key))
	r.gauge()
	for _, fn := range subs {
		fn(key)
	}
	return nil
}

// Get returns the active override for a key.
func (r *Resolver) Get(key string) (models.OverrideRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.active[key]
	return rec, ok
}

// Resolve applies override precedence: the override value with its
// provenance when one is active, otherwise the feed fallback.
func (r *Resolver) Resolve(key string, fallback models.Value) models.ResolvedValue {
	if rec, ok := r.Get(key); ok {
		return models.ResolvedValue{
			Value:      models.Parse(rec.Value),
			Source:     rec.Source,
			Overridden: true,
		}
	}
	return models.ResolvedValue{Value: fallback}
}

// All returns active overrides, newest first.
func (r *Resolver) All() []models.OverrideRecord {
	r.mu.RLock()
	out := make([]models.OverrideRecord, 0, len(r.active))
	for _, rec := range r.active {
		out = append(out, rec)
	}
	r.mu.RUnlock()

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Timestamp.After(out[j-1].Timestamp); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (r *Resolver) gauge() {
	if r.metrics == nil {
		return
	}
	r.mu.RLock()
	n := len(r.active)
	r.mu.RUnlock()
	r.metrics.RecordActiveOverrides(n)
}
