package render

import (
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// Highlight marks a transient price flash direction.
type Highlight string

const (
	HighlightNone Highlight = ""
	HighlightUp   Highlight = "up"
	HighlightDown Highlight = "down"
)

// FlashDuration is how long consumers show a highlight before fading it.
const FlashDuration = 900 * time.Millisecond

// Row is one table row as produced by a view builder.
type Row struct {
	ID        string       `json:"id"`
	Category  string       `json:"category"`
	Name      string       `json:"name"`
	Price     models.Value `json:"price"`
	PrevClose models.Value `json:"prev_close"`
	ChangePct models.Value `json:"change_pct"`
	Source    string       `json:"_source"`
}

// DiffedRow is a row plus its formatted cells and flash direction.
type DiffedRow struct {
	Row
	PriceText   string    `json:"price_text"`
	PrevText    string    `json:"prev_text"`
	ChangeText  string    `json:"change_text"`
	ChangeClass string    `json:"change_class"`
	Highlight   Highlight `json:"highlight,omitempty"`
}

// Frame is one diffed table render.
type Frame struct {
	Rows    []DiffedRow `json:"rows"`
	Rebuilt bool        `json:"rebuilt"`
}

// TableDiffer turns successive row lists into frames with per-cell flash
// directions. The first render, or any render whose row-id sequence differs
// from the last one, is a full rebuild: no highlights, state reset to the
// new rows. Otherwise a row flashes only when its numeric price changed,
// up or down by delta sign. The differ is not safe for concurrent use.
type TableDiffer struct {
	ids    []string
	prices map[string]float64
}

// NewTableDiffer creates an empty differ.
func NewTableDiffer() *TableDiffer {
	return &TableDiffer{prices: make(map[string]float64)}
}

// Diff produces the next frame for the given rows.
func (d *TableDiffer) Diff(rows []Row) Frame {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	rebuilt := d.ids == nil || !sameIDs(d.ids, ids)

	out := make([]DiffedRow, len(rows))
	next := make(map[string]float64, len(rows))
	for i, r := range rows {
		dr := DiffedRow{
			Row:         r,
			PriceText:   FormatPrice(r.Price),
			PrevText:    FormatPrice(r.PrevClose),
			ChangeText:  FormatChange(r.ChangePct),
			ChangeClass: ChangeClass(r.ChangePct),
		}
		price, numeric := r.Price.Float()
		if numeric {
			next[r.ID] = price
		}
		if !rebuilt && numeric {
			if old, ok := d.prices[r.ID]; ok && price != old {
				if price > old {
					dr.Highlight = HighlightUp
				} else {
					dr.Highlight = HighlightDown
				}
			}
		}
		out[i] = dr
	}

	// removed rows drop out of the state with the map swap
	d.ids = ids
	d.prices = next
	return Frame{Rows: out, Rebuilt: rebuilt}
}

// Reset forces the next Diff to be a full rebuild.
func (d *TableDiffer) Reset() {
	d.ids = nil
	d.prices = make(map[string]float64)
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
