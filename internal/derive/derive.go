package derive

import (
	"math"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// TroyOunceGrams converts a troy-ounce gold quote to grams.
const TroyOunceGrams = 31.1035

// Classification labels for the composite macro score.
const (
	SignalRiskOn  = "RISK-ON"
	SignalNeutral = "NEUTRAL"
	SignalRiskOff = "RISK-OFF"
)

// RealRate is the policy rate deflated by inflation. Any unavailable input
// yields N/A.
func RealRate(policy, cpi models.Value) models.Value {
	p, ok := policy.Float()
	if !ok {
		return models.NA()
	}
	c, ok := cpi.Float()
	if !ok {
		return models.NA()
	}
	return models.Num(p - c)
}

// RealCarry is the domestic real deposit return minus the US real rate.
func RealCarry(deposit, cpi, fedFunds, usCPI models.Value) models.Value {
	d, ok := deposit.Float()
	if !ok {
		return models.NA()
	}
	c, ok := cpi.Float()
	if !ok {
		return models.NA()
	}
	f, ok := fedFunds.Float()
	if !ok {
		return models.NA()
	}
	u, ok := usCPI.Float()
	if !ok {
		return models.NA()
	}
	return models.Num((d - c) - (f - u))
}

// RiskPremiumBps converts a yield spread in percentage points to basis
// points, rounded to the nearest whole point.
func RiskPremiumBps(spread models.Value) models.Value {
	s, ok := spread.Float()
	if !ok {
		return models.NA()
	}
	return models.Num(math.Round(s * 100))
}

// YieldCurveBps is the long-minus-short slope in basis points.
func YieldCurveBps(long, short models.Value) models.Value {
	l, ok := long.Float()
	if !ok {
		return models.NA()
	}
	s, ok := short.Float()
	if !ok {
		return models.NA()
	}
	return models.Num((l - s) * 100)
}

// EarningsYield inverts a price/earnings ratio into a percent yield.
func EarningsYield(pe models.Value) models.Value {
	p, ok := pe.Float()
	if !ok || p == 0 {
		return models.NA()
	}
	return models.Num(100 / p)
}

// EquityRiskPremium is the earnings yield net of the long bond yield.
func EquityRiskPremium(earningsYield, longYield models.Value) models.Value {
	e, ok := earningsYield.Float()
	if !ok {
		return models.NA()
	}
	y, ok := longYield.Float()
	if !ok {
		return models.NA()
	}
	return models.Num(e - y)
}

// GramGold converts a USD/oz gold quote into TRY per gram.
func GramGold(goldUSD, usdtry models.Value) models.Value {
	g, ok := goldUSD.Float()
	if !ok {
		return models.NA()
	}
	u, ok := usdtry.Float()
	if !ok {
		return models.NA()
	}
	return models.Num(g * u / TroyOunceGrams)
}

// Classify maps a composite score in [-100, +100] to a regime label. The
// high threshold is exclusive on the RISK-ON side, the low threshold
// exclusive on the NEUTRAL side.
func Classify(score float64, high, low float64) string {
	switch {
	case score > high:
		return SignalRiskOn
	case score > low:
		return SignalNeutral
	default:
		return SignalRiskOff
	}
}

// GaugePosition maps a composite score in [-100, +100] to a dial position
// in [0, 1].
func GaugePosition(score float64) float64 {
	return (score + 100) / 200
}
