package handler

import (
	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

// CalcHandler exposes the stateless line calculators. Results the
// calculators cannot produce are null, never errors.
type CalcHandler struct {
	factors *service.FactorService
}

func NewCalcHandler(factors *service.FactorService) *CalcHandler {
	return &CalcHandler{factors: factors}
}

type LogsPerMinuteRequest struct {
	Speed      float64 `json:"speed"`
	Diameter   float64 `json:"diameter"`
	PerfLength float64 `json:"perf_length"`
}

type RequiredSpeedRequest struct {
	Target     float64 `json:"target"`
	Diameter   float64 `json:"diameter"`
	PerfLength float64 `json:"perf_length"`
}

type RuntimeRequest struct {
	Diameter      float64 `json:"diameter"`
	EndDiameter   float64 `json:"end_diameter"`
	BreakDiameter float64 `json:"break_diameter"`
	Speed         float64 `json:"speed"`
	Bulk          float64 `json:"bulk"`
	IsTwoPly      bool    `json:"is_two_ply"`
}

type LengthRequest struct {
	Diameter    float64 `json:"diameter"`
	EndDiameter float64 `json:"end_diameter"`
	Bulk        float64 `json:"bulk"`
}

type SpeedsRequest struct {
	LineSpeed float64 `json:"line_speed"`
	CoreSize  float64 `json:"core_size"`
	RollSize  float64 `json:"roll_size"`
}

// LogsPerMinute POST /calc/logs-per-minute
func (h *CalcHandler) LogsPerMinute(c *gin.Context) {
	var req LogsPerMinuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	rate, ok, err := h.factors.LogsPerMinute(ctx, req.Speed, req.Diameter, req.PerfLength)
	if err != nil {
		ServiceError(c, err)
		return
	}
	valid, err := h.factors.HasValidFactor(ctx, req.Diameter, req.PerfLength)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{
		"logs_per_minute":  optional(rate, ok),
		"has_valid_factor": valid,
	})
}

// RequiredSpeed POST /calc/required-speed
func (h *CalcHandler) RequiredSpeed(c *gin.Context) {
	var req RequiredSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	speed, ok, err := h.factors.RequiredSpeed(c.Request.Context(), req.Target, req.Diameter, req.PerfLength)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"required_speed": optional(speed, ok)})
}

// Runtime POST /calc/runtime
func (h *CalcHandler) Runtime(c *gin.Context) {
	var req RuntimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	runtime := calc.CalculateRuntime(req.Diameter, req.EndDiameter, req.Speed, req.Bulk, req.IsTwoPly)
	toBreak := calc.CalculateRuntimeToBreak(req.Diameter, req.BreakDiameter, req.Speed, req.Bulk, req.IsTwoPly)
	Success(c, gin.H{
		"runtime":               runtime,
		"runtime_text":          calc.FormatMinutes(runtime),
		"runtime_to_break":      toBreak,
		"runtime_to_break_text": calc.FormatMinutes(toBreak),
	})
}

// Length POST /calc/length
func (h *CalcHandler) Length(c *gin.Context) {
	var req LengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	Success(c, gin.H{"length": calc.CalculateLength(req.Diameter, req.EndDiameter, req.Bulk)})
}

// Speeds POST /calc/speeds
func (h *CalcHandler) Speeds(c *gin.Context) {
	var req SpeedsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	Success(c, calc.CalculateSpeeds(calc.LineSettings{
		LineSpeed: req.LineSpeed,
		CoreSize:  req.CoreSize,
		RollSize:  req.RollSize,
	}))
}
