package entity

// ConversionFactor relates line speed to production rate for one product
// geometry. Factor is meters of line travel per log.
type ConversionFactor struct {
	Diameter   float64 `json:"diameter"`
	PerfLength float64 `json:"perfLength"`
	Factor     float64 `json:"factor"`
	IsLocked   bool    `json:"isLocked,omitempty"`
}

// Matches reports whether f is keyed by the exact (diameter, perfLength) pair.
func (f ConversionFactor) Matches(diameter, perfLength float64) bool {
	return f.Diameter == diameter && f.PerfLength == perfLength
}

// DefaultConversionFactors returns the two shipped, locked product specs.
func DefaultConversionFactors() []ConversionFactor {
	return []ConversionFactor{
		{Diameter: 105, PerfLength: 120, Factor: 23.53, IsLocked: true},
		{Diameter: 112, PerfLength: 124, Factor: 23.99, IsLocked: true},
	}
}
