// Package pricing converts print time, filament weight and the shop's fixed
// costs into a cost breakdown and a suggested sale price.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfiguration reports a cost configuration the formula cannot use,
	// such as a zero machine lifetime.
	ErrConfiguration = errors.New("pricing: invalid cost configuration")
	// ErrValidation reports job inputs outside their allowed range.
	ErrValidation = errors.New("pricing: invalid job input")
)

// Config keys as persisted in the flat cost configuration record.
const (
	KeyPricePerKg       = "precio_kg"
	KeyPricePerKWh      = "precio_kwh"
	KeyWatts            = "consumo_watts"
	KeyLifetimeHours    = "vida_util_horas"
	KeySparePartsPrice  = "precio_repuestos"
	KeyErrorMarginPct   = "margen_error_pct"
	KeyProfitMultiplier = "margen_ganancia"
)

// CostConfig holds the fixed costs of running the printer.
type CostConfig struct {
	PricePerKg       float64 `json:"precio_kg"`
	PricePerKWh      float64 `json:"precio_kwh"`
	Watts            float64 `json:"consumo_watts"`
	LifetimeHours    float64 `json:"vida_util_horas"`
	SparePartsPrice  float64 `json:"precio_repuestos"`
	ErrorMarginPct   float64 `json:"margen_error_pct"`
	ProfitMultiplier float64 `json:"margen_ganancia"`
}

// DefaultConfig returns the values used when no configuration was saved yet.
func DefaultConfig() CostConfig {
	return CostConfig{
		PricePerKg:       15900.0,
		PricePerKWh:      83.94,
		Watts:            150.0,
		LifetimeHours:    4320.0,
		SparePartsPrice:  75000.0,
		ErrorMarginPct:   20.0,
		ProfitMultiplier: 2.0,
	}
}

// Keys lists the record keys in a stable order.
func Keys() []string {
	return []string{
		KeyPricePerKg,
		KeyPricePerKWh,
		KeyWatts,
		KeyLifetimeHours,
		KeySparePartsPrice,
		KeyErrorMarginPct,
		KeyProfitMultiplier,
	}
}

// Values flattens c into the persisted key/value form.
func (c CostConfig) Values() map[string]float64 {
	return map[string]float64{
		KeyPricePerKg:       c.PricePerKg,
		KeyPricePerKWh:      c.PricePerKWh,
		KeyWatts:            c.Watts,
		KeyLifetimeHours:    c.LifetimeHours,
		KeySparePartsPrice:  c.SparePartsPrice,
		KeyErrorMarginPct:   c.ErrorMarginPct,
		KeyProfitMultiplier: c.ProfitMultiplier,
	}
}

// FromValues builds a config from stored keys. Missing keys keep their
// default; unknown keys are ignored.
func FromValues(values map[string]float64) CostConfig {
	c := DefaultConfig()
	fields := map[string]*float64{
		KeyPricePerKg:       &c.PricePerKg,
		KeyPricePerKWh:      &c.PricePerKWh,
		KeyWatts:            &c.Watts,
		KeyLifetimeHours:    &c.LifetimeHours,
		KeySparePartsPrice:  &c.SparePartsPrice,
		KeyErrorMarginPct:   &c.ErrorMarginPct,
		KeyProfitMultiplier: &c.ProfitMultiplier,
	}
	for key, v := range values {
		if field, ok := fields[key]; ok {
			*field = v
		}
	}
	return c
}

// Validate rejects negative and non-finite values. A zero lifetime is accepted here so the
// record can be saved while being edited; Compute refuses it.
func (c CostConfig) Validate() error {
	for _, key := range Keys() {
		v := c.Values()[key]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrConfiguration, key)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %v)", ErrConfiguration, key, v)
		}
	}
	return nil
}

// Job is a single print job.
type Job struct {
	Hours   int
	Minutes int
	Grams   float64
}

// Empty reports the "nothing entered yet" job.
func (j Job) Empty() bool {
	return float64(j.Hours)+float64(j.Minutes)+j.Grams == 0
}

// Result is the cost breakdown of a job.
type Result struct {
	TimeHours       float64
	FilamentCost    float64
	ElectricityCost float64
	WearCost        float64
	ErrorMargin     float64
	BaseCost        float64
	FinalPrice      float64
	EstimatedProfit float64
}

// Compute prices job under cfg. It returns (nil, nil) for an empty job.
func Compute(job Job, cfg CostConfig) (*Result, error) {
	if math.IsNaN(job.Grams) || math.IsInf(job.Grams, 0) {
		return nil, fmt.Errorf("%w: grams must be a finite number", ErrValidation)
	}
	if job.Hours < 0 || job.Grams < 0 {
		return nil, fmt.Errorf("%w: hours and grams must not be negative", ErrValidation)
	}
	if job.Minutes < 0 || job.Minutes > 59 {
		return nil, fmt.Errorf("%w: minutes must be in [0,59] (got %d)", ErrValidation, job.Minutes)
	}
	if job.Empty() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LifetimeHours == 0 {
		return nil, fmt.Errorf("%w: %s is zero", ErrConfiguration, KeyLifetimeHours)
	}

	timeHours := float64(job.Hours) + float64(job.Minutes)/60
	filament := job.Grams * cfg.PricePerKg / 1000
	electricity := (cfg.PricePerKWh * cfg.Watts / 1000) * timeHours
	wear := (cfg.SparePartsPrice / cfg.LifetimeHours) * timeHours
	direct := filament + electricity + wear
	errorMargin := direct * (cfg.ErrorMarginPct / 100)
	base := direct + errorMargin
	final := base * cfg.ProfitMultiplier

	return &Result{
		TimeHours:       timeHours,
		FilamentCost:    filament,
		ElectricityCost: electricity,
		WearCost:        wear,
		ErrorMargin:     errorMargin,
		BaseCost:        base,
		FinalPrice:      final,
		EstimatedProfit: final - base,
	}, nil
}
