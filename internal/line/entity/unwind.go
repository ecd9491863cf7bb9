package entity

// Unwind stand identifiers.
const (
	Unwind1 = 1
	Unwind2 = 2
)

// UnwindState is the measured state of a parent reel on an unwind stand.
// Diameters and Bulk are in millimeters, Speed in meters per minute.
type UnwindState struct {
	ID            int     `json:"id"`
	Diameter      float64 `json:"diameter"`
	EndDiameter   float64 `json:"endDiameter"`
	BreakDiameter float64 `json:"breakDiameter"`
	Speed         float64 `json:"speed"`
	Bulk          float64 `json:"bulk"`
	IsTwoPly      bool    `json:"isTwoPly"`
	PaperMachine  string  `json:"paperMachine"`
}

// DefaultUnwinds seeds an empty store.
func DefaultUnwinds() []UnwindState {
	return []UnwindState{{ID: Unwind1}, {ID: Unwind2}}
}
