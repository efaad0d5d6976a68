package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

func TestRealRate(t *testing.T) {
	got := RealRate(models.Num(50), models.Num(61.78))
	f, ok := got.Float()
	require.True(t, ok)
	assert.InDelta(t, -11.78, f, 1e-9)

	assert.True(t, RealRate(models.NA(), models.Num(61.78)).IsNA())
	assert.True(t, RealRate(models.Num(50), models.Parse("beklemede")).IsNA())
}

func TestRealCarry(t *testing.T) {
	got := RealCarry(models.Num(48), models.Num(62), models.Num(5.5), models.Num(3.2))
	f, ok := got.Float()
	require.True(t, ok)
	assert.InDelta(t, -16.3, f, 1e-9)

	assert.True(t, RealCarry(models.Num(48), models.Num(62), models.NA(), models.Num(3.2)).IsNA())
}

func TestRiskPremiumBps(t *testing.T) {
	f, ok := RiskPremiumBps(models.Num(23.456)).Float()
	require.True(t, ok)
	assert.Equal(t, 2346.0, f)

	assert.True(t, RiskPremiumBps(models.NA()).IsNA())
}

func TestYieldCurveBps(t *testing.T) {
	f, ok := YieldCurveBps(models.Num(27.5), models.Num(41.2)).Float()
	require.True(t, ok)
	assert.InDelta(t, -1370, f, 1e-6)
}

func TestEarningsYield(t *testing.T) {
	f, ok := EarningsYield(models.Num(8)).Float()
	require.True(t, ok)
	assert.InDelta(t, 12.5, f, 1e-9)

	assert.True(t, EarningsYield(models.Num(0)).IsNA())
	assert.True(t, EarningsYield(models.NA()).IsNA())
}

func TestEquityRiskPremium(t *testing.T) {
	f, ok := EquityRiskPremium(models.Num(12.5), models.Num(27.5)).Float()
	require.True(t, ok)
	assert.InDelta(t, -15, f, 1e-9)
}

func TestGramGold(t *testing.T) {
	f, ok := GramGold(models.Num(2400), models.Num(34)).Float()
	require.True(t, ok)
	assert.InDelta(t, 2400*34/31.1035, f, 1e-9)

	assert.True(t, GramGold(models.Num(2400), models.NA()).IsNA())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, SignalRiskOn, Classify(40, 25, -25))
	assert.Equal(t, SignalNeutral, Classify(-5, 25, -25))
	assert.Equal(t, SignalNeutral, Classify(25, 25, -25))
	assert.Equal(t, SignalRiskOff, Classify(-25, 25, -25))
	assert.Equal(t, SignalRiskOff, Classify(-80, 25, -25))
}

func TestGaugePosition(t *testing.T) {
	assert.InDelta(t, 0.5, GaugePosition(0), 1e-9)
	assert.InDelta(t, 1.0, GaugePosition(100), 1e-9)
	assert.InDelta(t, 0.0, GaugePosition(-100), 1e-9)
	assert.InDelta(t, 0.7, GaugePosition(40), 1e-9)
}

func TestCommaAndPercentInputsParse(t *testing.T) {
	got := RealRate(models.Parse("50,00%"), models.Parse("61,78"))
	f, ok := got.Float()
	require.True(t, ok)
	assert.InDelta(t, -11.78, f, 1e-9)
}
