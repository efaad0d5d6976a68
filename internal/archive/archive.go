package archive

import (
	"context"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// Archiver persists market snapshot history. One Archive call writes one
// row per quote with a numeric price; all backends share that contract.
type Archiver interface {
	Archive(ctx context.Context, snap *models.MarketSnapshot, at time.Time) error
	Close() error
}

// Entry is the wire row emitted by the streaming backends.
type Entry struct {
	Timestamp string   `json:"timestamp"`
	Symbol    string   `json:"symbol"`
	Price     float64  `json:"price"`
	ChangePct *float64 `json:"change_pct,omitempty"`
}

const timeLayout = "2006-01-02 15:04:05"

func entries(snap *models.MarketSnapshot, at time.Time) []Entry {
	if snap == nil {
		return nil
	}
	ts := at.Format(timeLayout)
	out := make([]Entry, 0, len(snap.Quotes))
	for symbol, q := range snap.Quotes {
		price, ok := q.Price.Float()
		if !ok {
			continue
		}
		e := Entry{Timestamp: ts, Symbol: symbol, Price: price}
		if change, ok := q.ChangePct.Float(); ok {
			e.ChangePct = &change
		}
		out = append(out, e)
	}
	return out
}
