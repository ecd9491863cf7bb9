package calc

import (
	"fmt"
	"math"
)

// The reel is modelled as a cylindrical annulus: the cross-section area
// equals sheet thickness (bulk) times wound length, so
//
//	L = π(D² − d²) / (4·t)

// CalculateLength returns the material length in meters between diameter
// and endDiameter (both mm) for a sheet of bulk mm, rounded to 5 places.
// Missing inputs or diameter <= endDiameter give 0.
func CalculateLength(diameter, endDiameter, bulk float64) float64 {
	if missing(diameter) || missing(endDiameter) || missing(bulk) {
		return 0
	}
	if diameter <= endDiameter {
		return 0
	}
	length := math.Pi * (diameter*diameter - endDiameter*endDiameter) / (4 * bulk) / 1000
	return roundTo(length, 5)
}

// CalculateRuntime returns whole minutes until the reel reaches endDiameter
// at speed m/min. Two-ply material is consumed twice as fast, halving the
// runtime. Missing inputs or diameter <= endDiameter give 0.
func CalculateRuntime(diameter, endDiameter, speed, bulk float64, isTwoPly bool) float64 {
	return runtimeBetween(diameter, endDiameter, speed, bulk, isTwoPly)
}

// CalculateRuntimeToBreak is CalculateRuntime against the break diameter,
// the warning threshold below which the reel is no longer reliable.
func CalculateRuntimeToBreak(diameter, breakDiameter, speed, bulk float64, isTwoPly bool) float64 {
	return runtimeBetween(diameter, breakDiameter, speed, bulk, isTwoPly)
}

func runtimeBetween(diameter, innerDiameter, speed, bulk float64, isTwoPly bool) float64 {
	if missing(diameter) || missing(innerDiameter) || missing(speed) || missing(bulk) {
		return 0
	}
	if diameter <= innerDiameter {
		return 0
	}

	outer := diameter / 1000
	inner := innerDiameter / 1000
	bulkMeters := bulk / 1000

	length := math.Pi * (outer*outer - inner*inner) / (4 * bulkMeters)
	runtime := length / speed
	if isTwoPly {
		runtime /= 2
	}
	return roundHalfUp(runtime)
}

// FormatMinutes renders a duration in minutes as HH:MM:SS.
func FormatMinutes(minutes float64) string {
	if missing(minutes) {
		return "00:00:00"
	}
	hours := math.Floor(minutes / 60)
	mins := math.Floor(math.Mod(minutes, 60))
	secs := roundHalfUp(math.Mod(minutes, 1) * 60)
	return fmt.Sprintf("%02d:%02d:%02d", int(hours), int(mins), int(secs))
}
