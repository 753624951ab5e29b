package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEmptyJobReturnsNothing(t *testing.T) {
	res, err := Compute(Job{}, DefaultConfig())

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestComputeReferenceJob(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProfitMultiplier = 2

	res, err := Compute(Job{Hours: 2, Minutes: 0, Grams: 50}, cfg)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.InDelta(t, 2.0, res.TimeHours, 1e-9)
	assert.InDelta(t, 795.0, res.FilamentCost, 1e-9)
	assert.InDelta(t, 25.182, res.ElectricityCost, 1e-9)
	assert.InDelta(t, 34.7222, res.WearCost, 0.0001)
	assert.InDelta(t, 170.9808, res.ErrorMargin, 0.0001)
	assert.InDelta(t, 1025.885, res.BaseCost, 0.01)
	assert.InDelta(t, 2051.770, res.FinalPrice, 0.01)
	assert.Equal(t, res.FinalPrice-res.BaseCost, res.EstimatedProfit)
}

func TestComputeMinutesOnly(t *testing.T) {
	cfg := CostConfig{PricePerKWh: 100, Watts: 1000, LifetimeHours: 10, SparePartsPrice: 10, ProfitMultiplier: 1}

	res, err := Compute(Job{Minutes: 30}, cfg)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.InDelta(t, 0.5, res.TimeHours, 1e-9)
	assert.InDelta(t, 50.0, res.ElectricityCost, 1e-9)
	assert.InDelta(t, 0.5, res.WearCost, 1e-9)
	assert.Zero(t, res.FilamentCost)
	assert.Zero(t, res.EstimatedProfit)
}

func TestComputeFinalPriceNeverBelowBaseCost(t *testing.T) {
	cfg := DefaultConfig()
	jobs := []Job{
		{Grams: 1},
		{Minutes: 1},
		{Hours: 1},
		{Hours: 12, Minutes: 59, Grams: 800.5},
		{Hours: 100, Grams: 0.01},
	}
	for _, multiplier := range []float64{1, 1.5, 2, 3.25} {
		cfg.ProfitMultiplier = multiplier
		for _, job := range jobs {
			res, err := Compute(job, cfg)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.GreaterOrEqual(t, res.FinalPrice, res.BaseCost)
			assert.Equal(t, res.FinalPrice-res.BaseCost, res.EstimatedProfit)
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	job := Job{Hours: 3, Minutes: 17, Grams: 123.4}
	first, err := Compute(job, DefaultConfig())
	require.NoError(t, err)
	second, err := Compute(job, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
}

func TestComputeZeroLifetimeIsConfigurationError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LifetimeHours = 0

	res, err := Compute(Job{Hours: 1}, cfg)

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, res)
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		job  Job
	}{
		{name: "negative hours", job: Job{Hours: -1}},
		{name: "negative grams", job: Job{Grams: -0.5}},
		{name: "minutes too large", job: Job{Minutes: 60}},
		{name: "negative minutes", job: Job{Minutes: -5, Hours: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.job, DefaultConfig())
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestComputeRejectsNegativeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PricePerKWh = -1

	_, err := Compute(Job{Hours: 1}, cfg)

	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestComputeRejectsNonFiniteGrams(t *testing.T) {
	for _, grams := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		res, err := Compute(Job{Hours: 1, Grams: grams}, DefaultConfig())

		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, res)
	}
}

func TestValidateRejectsNonFiniteConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PricePerKg = math.Inf(1)
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)

	cfg = DefaultConfig()
	cfg.Watts = math.NaN()
	_, err := Compute(Job{Hours: 1}, cfg)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFromValuesKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg := FromValues(map[string]float64{KeyPricePerKg: 20000, "unknown": 1})

	want := DefaultConfig()
	want.PricePerKg = 20000
	assert.Equal(t, want, cfg)
	assert.Equal(t, cfg, FromValues(cfg.Values()))
}
