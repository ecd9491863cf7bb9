package calc

import (
	"strconv"
	"time"
)

// Shift boundaries (local wall clock hours).
const (
	DayShiftStart   = 5
	NightShiftStart = 17
)

// IsDayShift reports whether t falls in the 05:00–17:00 shift.
func IsDayShift(t time.Time) bool {
	h := t.Hour()
	return h >= DayShiftStart && h < NightShiftStart
}

// ShiftHour maps t to its 1-based hour within the running 12 hour shift.
func ShiftHour(t time.Time) int {
	h := t.Hour()
	switch {
	case h >= DayShiftStart && h < NightShiftStart:
		return h - (DayShiftStart - 1)
	case h >= NightShiftStart:
		return h - (NightShiftStart - 1)
	default:
		// 00:00–05:00 continues the night shift at hour 8
		return h + 8
	}
}

// RemainingMinutes is the number of minutes left in the clock hour of t.
func RemainingMinutes(t time.Time) int {
	return 60 - t.Minute()
}

// ShiftHourLabel renders shift hour (1..12) as a clock range such as
// "5am-6am", using the shift that is running at now.
func ShiftHourLabel(hour int, now time.Time) string {
	if IsDayShift(now) {
		start := hour + DayShiftStart - 1
		end := start + 1
		endPeriod := "pm"
		if end < 12 || end == 24 {
			endPeriod = "am"
		}
		if end == 24 {
			end = 12
		}
		return dayHour(start) + period(start) + "-" + dayHour(end) + endPeriod
	}

	start := (hour + NightShiftStart - 1) % 24
	end := (start + 1) % 24
	return nightHour(start) + period(start) + "-" + nightHour(end) + period(end)
}

func period(h int) string {
	if h < 12 {
		return "am"
	}
	return "pm"
}

func dayHour(h int) string {
	if h > 12 {
		h -= 12
	}
	return strconv.Itoa(h)
}

func nightHour(h int) string {
	switch {
	case h == 0:
		return "12"
	case h > 12:
		return strconv.Itoa(h - 12)
	}
	return strconv.Itoa(h)
}
