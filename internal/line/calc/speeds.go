package calc

// LineSettings are the operator-entered line parameters.
type LineSettings struct {
	CoreSize     float64 `json:"coreSize"`
	RollSize     float64 `json:"rollSize"`
	PaperWeight  float64 `json:"paperWeight"`
	ProductGrade string  `json:"productGrade"`
	LineSpeed    float64 `json:"lineSpeed"`
}

// SpeedCalculations are the section speeds derived from the line speed.
type SpeedCalculations struct {
	LogSawSpeed     float64 `json:"logSawSpeed"`
	WinderSpeed     float64 `json:"winderSpeed"`
	DownstreamSpeed float64 `json:"downstreamSpeed"`
}

const (
	logSawRatio     = 1.2
	downstreamRatio = 0.95
)

// CalculateSpeeds derives the log saw, winder and downstream speeds. The
// winder speed is 0 until a core size is entered.
func CalculateSpeeds(s LineSettings) SpeedCalculations {
	out := SpeedCalculations{
		LogSawSpeed:     s.LineSpeed * logSawRatio,
		DownstreamSpeed: s.LineSpeed * downstreamRatio,
	}
	if !missing(s.CoreSize) {
		out.WinderSpeed = s.LineSpeed * (s.RollSize / s.CoreSize)
	}
	return out
}

// HourPlan is what the line has to do in the rest of the current hour to
// meet its target.
type HourPlan struct {
	Target                int      `json:"target"`
	CurrentLogs           int      `json:"current_logs"`
	RequiredLogs          int      `json:"required_logs"`
	RemainingMinutes      int      `json:"remaining_minutes"`
	RequiredLogsPerMinute float64  `json:"required_logs_per_minute"`
	CurrentLogsPerMinute  *float64 `json:"current_logs_per_minute"`
	RequiredSpeed         *float64 `json:"required_speed"`
	OnTrack               bool     `json:"on_track"`
}

// PlanHour computes the catch-up plan for an hour. RequiredSpeed is nil when
// the product has no conversion factor, and 0 when nothing more is required
// or the hour is over.
func PlanHour(table FactorTable, target, currentLogs, remainingMinutes int, lineSpeed, diameter, perfLength float64) HourPlan {
	plan := HourPlan{
		Target:           target,
		CurrentLogs:      currentLogs,
		RemainingMinutes: remainingMinutes,
	}
	if required := target - currentLogs; required > 0 {
		plan.RequiredLogs = required
	}

	var requiredRate float64
	if remainingMinutes > 0 {
		requiredRate = float64(plan.RequiredLogs) / float64(remainingMinutes)
		plan.RequiredLogsPerMinute = round1(requiredRate)
	}

	if rate, ok := CalculateLogsPerMinute(table, lineSpeed, diameter, perfLength); ok {
		plan.CurrentLogsPerMinute = &rate
	}

	if HasValidConversionFactor(table, diameter, perfLength) {
		speed := 0.0
		if plan.RequiredLogs > 0 && remainingMinutes > 0 {
			speed, _ = CalculateRequiredSpeed(table, requiredRate, diameter, perfLength)
		}
		plan.RequiredSpeed = &speed
	}

	switch {
	case plan.RequiredLogs == 0:
		plan.OnTrack = true
	case plan.CurrentLogsPerMinute != nil && remainingMinutes > 0:
		plan.OnTrack = *plan.CurrentLogsPerMinute >= requiredRate
	}
	return plan
}
