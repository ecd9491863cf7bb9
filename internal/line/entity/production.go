package entity

// TableType distinguishes the production tables.
type TableType string

const (
	TableTypeActual   TableType = "actual"
	TableTypeTarget   TableType = "target"
	TableTypeOperator TableType = "operator"
)

// ShiftHours is the number of hours in one shift; hour keys run 1..ShiftHours.
const ShiftHours = 12

// HourData is one shift hour of a production table. Nil means not entered.
type HourData struct {
	Logs   *int `json:"logs,omitempty"`
	Target *int `json:"target,omitempty"`
}

// ProductionTable tracks logs against targets for each hour of a shift.
type ProductionTable struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        TableType         `json:"type"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	HourData    map[int]*HourData `json:"hourData"`
	LockedHours []int             `json:"lockedHours,omitempty"`
}

// IsHourLocked reports whether hour is protected from edits.
func (t *ProductionTable) IsHourLocked(hour int) bool {
	for _, h := range t.LockedHours {
		if h == hour {
			return true
		}
	}
	return false
}

// DefaultProductionTables seeds an empty store.
func DefaultProductionTables() []ProductionTable {
	return []ProductionTable{
		{ID: "table1", Name: "Actual Logs", Type: TableTypeActual, Description: "Track actual production logs per hour", HourData: map[int]*HourData{}},
		{ID: "table2", Name: "Target Logs", Type: TableTypeTarget, Description: "Set and monitor target production goals", HourData: map[int]*HourData{}},
		{ID: "table3", Name: "Operator Target", Type: TableTypeOperator, Description: "Operator-specific production targets", HourData: map[int]*HourData{}},
	}
}
