package models

import "time"

// OverrideRecord is an operator-supplied value that supersedes the feed value
// for an entity until explicitly cleared. Provenance is retained.
type OverrideRecord struct {
	Key       string    `json:"entity_key"`
	Value     string    `json:"value"`
	Source    string    `json:"source"`
	SetBy     string    `json:"set_by"`
	Timestamp time.Time `json:"timestamp"`
}

// ResolvedValue is a display value together with its provenance.
type ResolvedValue struct {
	Value      Value  `json:"value"`
	Source     string `json:"source"`
	Overridden bool   `json:"overridden"`
}

// Ticket is a data-quality report filed from the console.
type Ticket struct {
	ID        int64     `json:"ticket_id"`
	Timestamp time.Time `json:"timestamp"`
	ItemsJSON string    `json:"items_json"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
}
