package entity

// ShiftType is the kind of day on the shift rota.
type ShiftType string

const (
	ShiftDay           ShiftType = "Day"
	ShiftNight         ShiftType = "Night"
	ShiftOTDay         ShiftType = "OT Day"
	ShiftOTNight       ShiftType = "OT Night"
	ShiftHoliday       ShiftType = "Holiday"
	ShiftSwapDayOwed   ShiftType = "Swap Day (Owed)"
	ShiftSwapNightOwed ShiftType = "Swap Night (Owed)"
	ShiftSwapDayDone   ShiftType = "Swap Day (Done)"
	ShiftSwapNightDone ShiftType = "Swap Night (Done)"
	ShiftEighteenOff   ShiftType = "18 Off"
)

// ShiftTypes lists every accepted shift type.
var ShiftTypes = []ShiftType{
	ShiftDay, ShiftNight, ShiftOTDay, ShiftOTNight, ShiftHoliday,
	ShiftSwapDayOwed, ShiftSwapNightOwed, ShiftSwapDayDone, ShiftSwapNightDone,
	ShiftEighteenOff,
}

// Valid reports whether t is a known shift type.
func (t ShiftType) Valid() bool {
	for _, s := range ShiftTypes {
		if s == t {
			return true
		}
	}
	return false
}

// IsOvertime reports whether hours are tracked for t.
func (t ShiftType) IsOvertime() bool {
	return t == ShiftOTDay || t == ShiftOTNight
}

// RotaEntry is one calendar day of the shift rota. Type is empty for a day
// that only carries a note.
type RotaEntry struct {
	Type  ShiftType `json:"type,omitempty"`
	Note  string    `json:"note,omitempty"`
	Hours float64   `json:"hours,omitempty"`
}

// RotaDateLayout is the key format of rota entries.
const RotaDateLayout = "2006-01-02"
