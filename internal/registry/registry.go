package registry

import (
	"sort"
	"strings"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
)

// match types reported by Search.
const (
	MatchExact = "exact"
	MatchGroup = "group"
	MatchFuzzy = "fuzzy"
)

const maxFuzzyResults = 15

// OverrideSource supplies the active override for an entity, if any.
type OverrideSource interface {
	Get(key string) (models.OverrideRecord, bool)
}

// Registry is the static table of addressable entities with search and
// lookup over it.
type Registry struct {
	byKey     map[string]models.Entity
	byGroup   map[string][]string
	order     []string
	overrides OverrideSource
}

// Option configures a Registry.
type Option func(*Registry)

// WithOverrides wires the override resolver into Describe results.
func WithOverrides(src OverrideSource) Option {
	return func(r *Registry) { r.overrides = src }
}

// New builds the registry from the canonical entity table.
func New(opts ...Option) *Registry {
	r := &Registry{
		byKey:   make(map[string]models.Entity, len(entities)),
		byGroup: make(map[string][]string),
		order:   make([]string, 0, len(entities)),
	}
	for _, e := range entities {
		r.byKey[e.Key] = e
		r.byGroup[e.Group] = append(r.byGroup[e.Group], e.Key)
		r.order = append(r.order, e.Key)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the entity for a key.
func (r *Registry) Get(key string) (models.Entity, bool) {
	e, ok := r.byKey[normalize(key)]
	return e, ok
}

// Group returns all entities in a group, in table order.
func (r *Registry) Group(group string) []models.Entity {
	keys := r.byGroup[normalize(group)]
	out := make([]models.Entity, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.byKey[k])
	}
	return out
}

// Search finds entities matching a query. An exact key match wins alone; a
// group name returns the whole group; otherwise a ranked substring search
// over key, name, group and explanation text, capped at 15 hits.
func (r *Registry) Search(query string) []models.SearchMatch {
	q := normalize(query)
	if q == "" {
		return nil
	}

	if e, ok := r.byKey[q]; ok {
		return []models.SearchMatch{toMatch(e, MatchExact)}
	}

	if keys, ok := r.byGroup[q]; ok {
		out := make([]models.SearchMatch, 0, len(keys))
		for _, k := range keys {
			out = append(out, toMatch(r.byKey[k], MatchGroup))
		}
		return out
	}

	type scored struct {
		match models.SearchMatch
		score int
		pos   int
	}
	var hits []scored
	for i, key := range r.order {
		e := r.byKey[key]
		score := 0
		switch {
		case strings.Contains(key, q):
			score = 3
		case strings.Contains(strings.ToLower(e.Name), q):
			score = 2
		case strings.Contains(strings.ToLower(e.Group), q),
			strings.Contains(strings.ToLower(e.Explain), q):
			score = 1
		}
		if score > 0 {
			hits = append(hits, scored{match: toMatch(e, MatchFuzzy), score: score, pos: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})
	if len(hits) > maxFuzzyResults {
		hits = hits[:maxFuzzyResults]
	}
	out := make([]models.SearchMatch, len(hits))
	for i, h := range hits {
		out[i] = h.match
	}
	return out
}

// Describe returns the full descriptor for an entity: its metadata, the
// active override when one exists, and related entities from the same group.
func (r *Registry) Describe(key string) (models.EntityDescriptor, error) {
	e, ok := r.Get(key)
	if !ok {
		return models.EntityDescriptor{}, apphttp.NotFoundErrorf("unknown entity %q", key)
	}

	desc := models.EntityDescriptor{Entity: e}
	if r.overrides != nil {
		if rec, ok := r.overrides.Get(e.Key); ok {
			desc.Override = &rec
		}
	}
	for _, sibling := range r.Group(e.Group) {
		if sibling.Key != e.Key {
			desc.Related = append(desc.Related, sibling)
		}
	}
	return desc, nil
}

func normalize(s string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "@")
}

func toMatch(e models.Entity, matchType string) models.SearchMatch {
	return models.SearchMatch{Key: e.Key, Name: e.Name, Group: e.Group, MatchType: matchType}
}
