package render

import (
	"fmt"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/derive"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// Resolver supplies override-aware values for sidebar rows.
type Resolver interface {
	Resolve(key string, fallback models.Value) models.ResolvedValue
}

// SidebarRow is one labelled value in the macro sidebar.
type SidebarRow struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Source     string `json:"source"`
	Overridden bool   `json:"overridden,omitempty"`
}

// GaugeVM is the scorecard dial view.
type GaugeVM struct {
	Composite models.Value                  `json:"composite"`
	Signal    string                        `json:"signal"`
	Gauge     float64                       `json:"gauge"`
	Scores    map[string]models.SignalScore `json:"scores"`
	Available int                           `json:"metrics_available"`
	Total     int                           `json:"metrics_total"`
}

// ComparisonColumn is one side of a two-entity comparison popup.
type ComparisonColumn struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Group   string `json:"group"`
	Unit    string `json:"unit"`
	Explain string `json:"explain"`
}

// ComparisonVM is the side-by-side view for `k vs k2`.
type ComparisonVM struct {
	Title string           `json:"title"`
	Left  ComparisonColumn `json:"left"`
	Right ComparisonColumn `json:"right"`
}

// MarketRows flattens a market snapshot into differ rows: every category in
// its tape order, one row per quote. Quotes missing from the snapshot are
// skipped, matching the original table renderer.
func MarketRows(snap *models.MarketSnapshot) []Row {
	if snap == nil {
		return nil
	}
	var rows []Row
	for _, cat := range categoryOrder(snap) {
		for _, sym := range snap.Categories[cat] {
			q, ok := snap.Quotes[sym]
			if !ok {
				continue
			}
			rows = append(rows, Row{
				ID:        sym,
				Category:  cat,
				Name:      q.Name,
				Price:     q.Price,
				PrevClose: q.PrevClose,
				ChangePct: q.ChangePct,
				Source:    q.Source,
			})
		}
	}
	return rows
}

// TapeRows builds the ticker tape in its dedicated order.
func TapeRows(snap *models.MarketSnapshot) []Row {
	if snap == nil {
		return nil
	}
	rows := make([]Row, 0, len(snap.TapeOrder))
	for _, sym := range snap.TapeOrder {
		q, ok := snap.Quotes[sym]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			ID:        sym,
			Name:      q.Name,
			Price:     q.Price,
			ChangePct: q.ChangePct,
			Source:    q.Source,
		})
	}
	return rows
}

// MacroSidebar builds the rates-and-bonds sidebar over the macro and
// domestic feeds. Derived rows carry the CALC provenance tag; overridden
// rows carry the override's source and the manual marker.
func MacroSidebar(macro *models.MacroSnapshot, tm *models.TurkeyMacroSnapshot, resolver Resolver) []SidebarRow {
	if macro == nil {
		macro = &models.MacroSnapshot{}
	}

	bond := func(k string) models.Value { return macro.Bonds[k] }

	// An override on a raw input must flow into every derivation that
	// consumes it, so each input is resolved once and both its own row
	// and the derived rows read the resolved value.
	resolve := func(key string, fallback models.Value) models.Value {
		return resolver.Resolve(key, fallback).Value
	}
	aofm := resolve("policy_rate", macro.PolicyRates["aofm"])
	deposit := resolve("deposit_rate", macro.PolicyRates["deposit"])
	cpi := resolve("cpi_yoy", tm.Find("cpi"))
	tr2y := resolve("tr_2y", bond("tr_2y"))
	tr10y := resolve("tr_10y", bond("tr_10y"))

	var rows []SidebarRow
	add := func(key, label string, fallback models.Value, source string) {
		res := resolver.Resolve(key, fallback)
		src := source
		if res.Overridden {
			src = res.Source
		}
		rows = append(rows, SidebarRow{
			Key:        key,
			Label:      label,
			Value:      FormatValue(res.Value),
			Source:     src,
			Overridden: res.Overridden,
		})
	}

	add("policy_rate", "CBRT AOFM", macro.PolicyRates["aofm"], "macro")
	add("deposit_rate", "Deposit Rate", macro.PolicyRates["deposit"], "macro")
	add("com_loan", "Comm. Loan", macro.PolicyRates["comm_loan"], "macro")
	add("real_rate", "Real Rate", derive.RealRate(aofm, cpi), "CALC")
	add("real_carry", "Real Carry",
		derive.RealCarry(deposit, cpi, bond("fed_funds"), bond("us_cpi")), "CALC")

	add("tr_2y", "TR 2Y", bond("tr_2y"), "macro")
	add("tr_10y", "TR 10Y", bond("tr_10y"), "macro")
	add("us_10y", "US 10Y", bond("us_10y"), "macro")
	add("risk_premium", "Risk Prem.", derive.RiskPremiumBps(bond("spread")), "CALC")
	add("tr_curve", "TR Curve",
		derive.YieldCurveBps(tr10y, tr2y), "CALC")
	add("cds", "CDS 5Y", macro.CDS.Val, macro.CDS.Source)
	return rows
}

// EquityRiskRows builds the valuation sidebar block.
func EquityRiskRows(snap *models.EquityRiskSnapshot, resolver Resolver) []SidebarRow {
	if snap == nil {
		return nil
	}
	pe := resolver.Resolve("pe", snap.PE)
	tr10y := resolver.Resolve("tr_10y", snap.TR10Y)
	ey := derive.EarningsYield(pe.Value)
	erp := derive.EquityRiskPremium(ey, tr10y.Value)

	rows := []SidebarRow{
		{Key: "pe", Label: "BIST P/E", Value: FormatValue(pe.Value), Source: "equity_risk", Overridden: pe.Overridden},
		{Key: "earnings_yield", Label: "Earn. Yield", Value: FormatValue(ey), Source: "CALC"},
		{Key: "erp", Label: "ERP", Value: FormatValue(erp), Source: "CALC"},
	}
	if pe.Overridden {
		rows[0].Source = pe.Source
	}
	return rows
}

// ScorecardGauge projects the scorecard feed into the dial view. An
// unavailable composite pins the needle to center with no signal.
func ScorecardGauge(snap *models.ScorecardSnapshot, high, low float64) GaugeVM {
	if snap == nil {
		return GaugeVM{Composite: models.NA(), Signal: models.NASentinel, Gauge: 0.5}
	}
	vm := GaugeVM{
		Composite: snap.Composite,
		Scores:    snap.Scores,
		Available: snap.Available,
		Total:     snap.Total,
	}
	score, ok := snap.Composite.Float()
	if !ok {
		vm.Signal = models.NASentinel
		vm.Gauge = 0.5
		return vm
	}
	vm.Signal = derive.Classify(score, high, low)
	vm.Gauge = derive.GaugePosition(score)
	return vm
}

// Comparison builds the two-column popup for an entity pair.
func Comparison(left, right models.EntityDescriptor) ComparisonVM {
	col := func(d models.EntityDescriptor) ComparisonColumn {
		return ComparisonColumn{
			Key:     d.Key,
			Name:    d.Name,
			Group:   d.Group,
			Unit:    d.Unit,
			Explain: d.Explain,
		}
	}
	return ComparisonVM{
		Title: fmt.Sprintf("%s vs %s", left.Name, right.Name),
		Left:  col(left),
		Right: col(right),
	}
}

// categoryOrder returns snapshot categories in a stable order: the tape
// order decides which category appears first, unknown categories follow
// alphabetically. Stability matters for the differ's structural check.
func categoryOrder(snap *models.MarketSnapshot) []string {
	seen := make(map[string]bool, len(snap.Categories))
	var order []string
	for _, sym := range snap.TapeOrder {
		for cat, syms := range snap.Categories {
			if seen[cat] {
				continue
			}
			for _, s := range syms {
				if s == sym {
					seen[cat] = true
					order = append(order, cat)
					break
				}
			}
		}
	}
	var rest []string
	for cat := range snap.Categories {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	for i := 1; i < len(rest); i++ {
		for j := i; j > 0 && rest[j] < rest[j-1]; j-- {
			rest[j], rest[j-1] = rest[j-1], rest[j]
		}
	}
	return append(order, rest...)
}
