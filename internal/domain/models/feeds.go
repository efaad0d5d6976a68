package models

import "time"

// FeedID identifies an independently-refreshed feed collaborator.
type FeedID string

const (
	FeedMarket      FeedID = "market"
	FeedMacro       FeedID = "macro"
	FeedTurkeyMacro FeedID = "turkey_macro"
	FeedCBRT        FeedID = "cbrt"
	FeedCalendar    FeedID = "calendar"
	FeedEquityRisk  FeedID = "equity_risk"
	FeedMovers      FeedID = "movers"
	FeedNews        FeedID = "news"
	FeedGoldCorr    FeedID = "gold_corr"
	FeedScorecard   FeedID = "scorecard"
)

// Quote is one instrument row in the market snapshot.
type Quote struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Price     Value  `json:"price"`
	PrevClose Value  `json:"prev_close"`
	ChangePct Value  `json:"change_pct"`
	Source    string `json:"_source"`
}

// ExchangeStatus reports whether a venue is currently trading.
type ExchangeStatus struct {
	Label     string `json:"label"`
	Status    string `json:"status"`
	LocalTime string `json:"time"`
	IsOpen    bool   `json:"is_open"`
}

// MarketSnapshot is the normalized market feed payload.
type MarketSnapshot struct {
	Quotes     map[string]Quote          `json:"data"`
	Categories map[string][]string       `json:"categories"`
	TapeOrder  []string                  `json:"ticker_tape"`
	Status     map[string]ExchangeStatus `json:"status"`
	AsOf       time.Time                 `json:"as_of"`
}

// CDSQuote carries the sovereign credit-default-swap level.
type CDSQuote struct {
	Val    Value  `json:"val"`
	Source string `json:"source"`
	Label  string `json:"label"`
}

// MacroSnapshot is the domestic macro feed: policy rates, bond yields, CDS.
// Bond keys follow the collaborator contract: tr_2y, tr_10y, us_10y, spread,
// fed_funds, us_cpi, tr_yield_curve (spread and curve as fractions of yield).
type MacroSnapshot struct {
	PolicyRates map[string]Value `json:"policy_rates"`
	Bonds       map[string]Value `json:"bonds"`
	CDS         CDSQuote         `json:"cds"`
}

// Indicator is one entry of the international/domestic indicator list feed.
type Indicator struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Last     Value  `json:"last"`
	Previous Value  `json:"previous"`
	Unit     string `json:"unit"`
	Date     string `json:"date"`
	Source   string `json:"_source"`
}

// TurkeyMacroSnapshot is the ordered indicator list.
type TurkeyMacroSnapshot struct {
	Indicators []Indicator `json:"indicators"`
}

// Find returns the indicator value for a key, N/A when absent.
func (s *TurkeyMacroSnapshot) Find(key string) Value {
	if s == nil {
		return NA()
	}
	for _, it := range s.Indicators {
		if it.Key == key {
			return it.Last
		}
	}
	return NA()
}

// RatePoint is one step in the central-bank rate history.
type RatePoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// CBRTSnapshot is the central-bank tracker feed.
type CBRTSnapshot struct {
	CurrentRate    Value       `json:"current_rate"`
	PreviousRate   Value       `json:"previous_rate"`
	LastChangeDate string      `json:"last_change_date"`
	NextMeeting    string      `json:"next_meeting"`
	History        []RatePoint `json:"history"`
}

// CalendarEvent is one upcoming economic event.
type CalendarEvent struct {
	Date       string `json:"date"`
	Country    string `json:"country"`
	Event      string `json:"event"`
	Importance string `json:"importance"`
}

// CalendarSnapshot is the date-sorted event list.
type CalendarSnapshot struct {
	Events []CalendarEvent `json:"events"`
}

// EquityRiskSnapshot is the valuation feed: P/E, earnings yield and ERP.
type EquityRiskSnapshot struct {
	PE            Value `json:"pe"`
	EarningsYield Value `json:"earnings_yield"`
	TR10Y         Value `json:"tr_10y"`
	ERP           Value `json:"erp"`
}

// Mover is a gainer/loser/most-traded entry.
type Mover struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Price     Value  `json:"price"`
	ChangePct Value  `json:"change_pct"`
}

// MoverLists holds the three boards for one index.
type MoverLists struct {
	Gainers    []Mover `json:"gainers"`
	Losers     []Mover `json:"losers"`
	MostTraded []Mover `json:"most_traded"`
}

// MoversSnapshot is the movers feed keyed by index (bist30, bist100).
type MoversSnapshot struct {
	ByIndex map[string]MoverLists `json:"by_index"`
	Source  string                `json:"_source"`
}

// NewsItem is one aggregated headline.
type NewsItem struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
}

// NewsSnapshot is the aggregated news feed.
type NewsSnapshot struct {
	Items []NewsItem `json:"items"`
}

// GoldCorrSnapshot is the gold/FX correlation composite.
type GoldCorrSnapshot struct {
	CorrUSD Value  `json:"corr_usd"`
	Window  string `json:"window"`
}

// SignalScore is one upstream-classified scorecard category.
type SignalScore struct {
	Score  float64 `json:"score"`
	Value  string  `json:"value"`
	Signal string  `json:"signal"`
}

// ScorecardSnapshot is the macro scorecard feed. Composite is the weighted
// sum of category scores scaled to [-100, +100].
type ScorecardSnapshot struct {
	Scores    map[string]SignalScore `json:"scores"`
	Composite Value                  `json:"composite"`
	Available int                    `json:"metrics_available"`
	Total     int                    `json:"metrics_total"`
}
