package handler

import (
	"time"

	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

// ProductionHandler serves the hourly production tables and line settings.
type ProductionHandler struct {
	svc *service.ProductionService
	now func() time.Time
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc, now: time.Now}
}

// UpdateHourRequest sets one field of an hour; a null value clears it.
type UpdateHourRequest struct {
	Field string `json:"field" binding:"required,oneof=logs target"`
	Value *int   `json:"value"`
}

type TargetRequest struct {
	Target int `json:"target" binding:"min=0"`
}

type PlanHourRequest struct {
	Target      int `json:"target" binding:"min=0"`
	CurrentLogs int `json:"current_logs" binding:"min=0"`
}

// List GET /tables
func (h *ProductionHandler) List(c *gin.Context) {
	tables, err := h.svc.ListTables(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": tables})
}

// Get GET /tables/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	table, err := h.svc.GetTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, table)
}

// Activate POST /tables/:id/activate
func (h *ProductionHandler) Activate(c *gin.Context) {
	tables, err := h.svc.SetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": tables})
}

// UpdateHour PUT /tables/:id/hours/:hour
func (h *ProductionHandler) UpdateHour(c *gin.Context) {
	hour, ok := intParam(c, "hour")
	if !ok {
		return
	}
	var req UpdateHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	table, err := h.svc.UpdateHour(c.Request.Context(), c.Param("id"), hour, req.Field, req.Value)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, table)
}

// ToggleLock POST /tables/:id/hours/:hour/lock
func (h *ProductionHandler) ToggleLock(c *gin.Context) {
	hour, ok := intParam(c, "hour")
	if !ok {
		return
	}
	table, err := h.svc.ToggleHourLock(c.Request.Context(), c.Param("id"), hour)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, table)
}

// ApplyTarget POST /tables/:id/target
func (h *ProductionHandler) ApplyTarget(c *gin.Context) {
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	table, err := h.svc.ApplyGlobalTarget(c.Request.Context(), c.Param("id"), req.Target)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, table)
}

// ApplyOperatorTarget POST /tables/:id/operator-target
func (h *ProductionHandler) ApplyOperatorTarget(c *gin.Context) {
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	table, err := h.svc.ApplyOperatorTarget(c.Request.Context(), c.Param("id"), req.Target)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, table)
}

// Reset POST /tables/:id/reset
func (h *ProductionHandler) Reset(c *gin.Context) {
	table, err := h.svc.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, table)
}

// Summary GET /tables/:id/summary
func (h *ProductionHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, summary)
}

// Plan GET /tables/:id/plan
func (h *ProductionHandler) Plan(c *gin.Context) {
	plan, err := h.svc.Plan(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, plan)
}

// PlanHour POST /line/plan
func (h *ProductionHandler) PlanHour(c *gin.Context) {
	var req PlanHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	plan, err := h.svc.PlanHour(c.Request.Context(), req.Target, req.CurrentLogs, h.now())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, plan)
}

// LineStatus GET /line
func (h *ProductionHandler) LineStatus(c *gin.Context) {
	status, err := h.svc.LineStatus(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, status)
}

// UpdateLineSettings PUT /line
func (h *ProductionHandler) UpdateLineSettings(c *gin.Context) {
	var input service.LineSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	status, err := h.svc.UpdateLineSettings(c.Request.Context(), &input)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, status)
}
