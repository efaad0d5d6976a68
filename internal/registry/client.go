package registry

import (
	"sync"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// Client serializes concurrent searches for one console session. Each search
// is stamped with a monotonically increasing token; results are applied only
// when their token is still the latest issued, so a slow earlier search can
// never overwrite the results of the query the user actually typed last.
type Client struct {
	registry *Registry

	mu      sync.Mutex
	issued  uint64
	applied uint64
	results []models.SearchMatch
}

// NewClient wraps a registry with the stale-results guard.
func NewClient(r *Registry) *Client {
	return &Client{registry: r}
}

// Begin stamps a new search and returns its token.
func (c *Client) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Search runs the query and applies its results under the token. It reports
// whether the results were applied or discarded as stale.
func (c *Client) Search(token uint64, query string) ([]models.SearchMatch, bool) {
	matches := c.registry.Search(query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.issued || token <= c.applied {
		return nil, false
	}
	c.applied = token
	c.results = matches
	return matches, true
}

// Results returns the currently visible result list.
func (c *Client) Results() []models.SearchMatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// Reset clears visible results without invalidating the token sequence.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = nil
}
