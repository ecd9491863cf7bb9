// Package calc converts between line speed and production rate, and predicts
// unwind reel runtimes. Everything here is pure: no I/O, no clocks, no state.
package calc

import "github.com/bitfantasy/linedash/internal/line/entity"

// FactorTable answers exact conversion factor lookups.
type FactorTable interface {
	Lookup(diameter, perfLength float64) (float64, bool)
}

// Factors is a FactorTable backed by a plain slice.
type Factors []entity.ConversionFactor

// Lookup returns the factor registered for the exact (diameter, perfLength) pair.
func (fs Factors) Lookup(diameter, perfLength float64) (float64, bool) {
	for _, f := range fs {
		if f.Matches(diameter, perfLength) {
			return f.Factor, true
		}
	}
	return 0, false
}

// GetConversionFactor looks up the factor for an exact pair. There is no
// nearest match: an unregistered pair is unsupported.
func GetConversionFactor(table FactorTable, diameter, perfLength float64) (float64, bool) {
	if table == nil {
		return 0, false
	}
	return table.Lookup(diameter, perfLength)
}

func usableFactor(table FactorTable, diameter, perfLength float64) (float64, bool) {
	if missing(diameter) || missing(perfLength) {
		return 0, false
	}
	factor, ok := GetConversionFactor(table, diameter, perfLength)
	if !ok || missing(factor) {
		return 0, false
	}
	return factor, true
}

// CalculateLogsPerMinute converts a line speed in m/min to logs/min.
// ok is false when the product spec is incomplete or has no factor.
func CalculateLogsPerMinute(table FactorTable, speedMPM, diameter, perfLength float64) (float64, bool) {
	factor, ok := usableFactor(table, diameter, perfLength)
	if !ok {
		return 0, false
	}
	return round1(speedMPM / factor), true
}

// CalculateRequiredSpeed converts a target rate in logs/min to the line
// speed in m/min that produces it. It is the inverse of CalculateLogsPerMinute.
func CalculateRequiredSpeed(table FactorTable, targetLogsPerMinute, diameter, perfLength float64) (float64, bool) {
	factor, ok := usableFactor(table, diameter, perfLength)
	if !ok {
		return 0, false
	}
	return round1(targetLogsPerMinute * factor), true
}

// HasValidConversionFactor reports whether speed/rate conversion is
// available for the product spec.
func HasValidConversionFactor(table FactorTable, diameter, perfLength float64) bool {
	if missing(diameter) || missing(perfLength) {
		return false
	}
	_, ok := GetConversionFactor(table, diameter, perfLength)
	return ok
}
