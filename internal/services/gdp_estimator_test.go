package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

// ============================================================================
// TEST SUITE: ESTIMATION POLICY
// ============================================================================

func TestEstimateGDP_NoCurrencyCode(t *testing.T) {
	rates := map[string]float64{"USD": 1.0}

	rate, gdp := EstimateGDP(1000000, nil, rates)

	assert.Nil(t, rate, "rate should be unknown without a currency code")
	assert.NotNil(t, gdp, "GDP is defined as exactly zero without a currency code")
	assert.Equal(t, 0.0, *gdp)
}

func TestEstimateGDP_UnknownCurrencyCode(t *testing.T) {
	rates := map[string]float64{"USD": 1.0}

	rate, gdp := EstimateGDP(1000000, strPtr("XXX"), rates)

	assert.Nil(t, rate, "unknown code should yield no rate")
	assert.Nil(t, gdp, "unknown code should yield unknown GDP, not zero")
}

func TestEstimateGDP_ZeroRate(t *testing.T) {
	rates := map[string]float64{"ZWL": 0.0}

	rate, gdp := EstimateGDP(1000000, strPtr("ZWL"), rates)

	assert.Nil(t, rate)
	assert.Nil(t, gdp)
}

func TestEstimateGDP_NegativeRate(t *testing.T) {
	rates := map[string]float64{"BAD": -5.0}

	rate, gdp := EstimateGDP(1000000, strPtr("BAD"), rates)

	assert.Nil(t, rate)
	assert.Nil(t, gdp)
}

func TestEstimateGDP_PositiveRate(t *testing.T) {
	rates := map[string]float64{"NGN": 1600.23}
	population := int64(206139589)

	rate, gdp := EstimateGDP(population, strPtr("NGN"), rates)

	assert.NotNil(t, rate)
	assert.Equal(t, 1600.23, *rate)
	assert.NotNil(t, gdp)
	assert.GreaterOrEqual(t, *gdp, float64(population)*1000.0/1600.23)
	assert.LessOrEqual(t, *gdp, float64(population)*2000.0/1600.23)
}

// ============================================================================
// TEST SUITE: MULTIPLIER BOUNDS
// ============================================================================

func TestEstimateGDP_RepeatedCallsStayWithinBounds(t *testing.T) {
	rates := map[string]float64{"GHS": 15.34}
	population := int64(31072940)
	lower := float64(population) * 1000.0 / 15.34
	upper := float64(population) * 2000.0 / 15.34

	for i := 0; i < 1000; i++ {
		_, gdp := EstimateGDP(population, strPtr("GHS"), rates)
		assert.NotNil(t, gdp)
		assert.GreaterOrEqual(t, *gdp, lower)
		assert.LessOrEqual(t, *gdp, upper)
	}
}

func TestEstimateGDP_ZeroPopulation(t *testing.T) {
	rates := map[string]float64{"NGN": 1600.23}

	rate, gdp := EstimateGDP(0, strPtr("NGN"), rates)

	assert.NotNil(t, rate)
	assert.NotNil(t, gdp)
	assert.Equal(t, 0.0, *gdp, "zero population always estimates to zero")
}
