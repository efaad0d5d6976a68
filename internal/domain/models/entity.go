package models

// Entity is one addressable data point in the registry: every tracked rate,
// indicator and instrument has a symbolic key.
type Entity struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Group        string `json:"group"`
	TechnicalKey string `json:"technical_key"`
	Source       string `json:"source"`
	Unit         string `json:"unit"`
	Explain      string `json:"explain"`
	Chartable    bool   `json:"chartable"`
}

// EntityDescriptor is the full lookup result for one entity. Fetched per
// lookup, never cached beyond a single popup.
type EntityDescriptor struct {
	Entity
	Override *OverrideRecord `json:"override,omitempty"`
	Related  []Entity        `json:"related"`
}

// SearchMatch is one registry search hit.
type SearchMatch struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	MatchType string `json:"match_type"`
}
