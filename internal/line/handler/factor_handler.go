package handler

import (
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

type FactorHandler struct {
	svc *service.FactorService
}

func NewFactorHandler(svc *service.FactorService) *FactorHandler {
	return &FactorHandler{svc: svc}
}

// FactorKey identifies a table entry by product geometry.
type FactorKey struct {
	Diameter   float64 `json:"diameter" binding:"required"`
	PerfLength float64 `json:"perf_length" binding:"required"`
}

type FactorRequest struct {
	FactorKey
	Factor   float64 `json:"factor" binding:"required"`
	IsLocked bool    `json:"is_locked"`
}

// List GET /factors
func (h *FactorHandler) List(c *gin.Context) {
	factors, err := h.svc.List(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": factors})
}

// Create POST /factors
func (h *FactorHandler) Create(c *gin.Context) {
	var req FactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	f, err := h.svc.Add(c.Request.Context(), entity.ConversionFactor{
		Diameter:   req.Diameter,
		PerfLength: req.PerfLength,
		Factor:     req.Factor,
		IsLocked:   req.IsLocked,
	})
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, f)
}

// Update PUT /factors
func (h *FactorHandler) Update(c *gin.Context) {
	var req FactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	f, err := h.svc.Update(c.Request.Context(), req.Diameter, req.PerfLength, req.Factor)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, f)
}

// Delete DELETE /factors?diameter=&perf_length=
func (h *FactorHandler) Delete(c *gin.Context) {
	diameter, ok := floatQuery(c, "diameter", 0)
	if !ok {
		return
	}
	perfLength, ok := floatQuery(c, "perf_length", 0)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), diameter, perfLength); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Lock POST /factors/lock
func (h *FactorHandler) Lock(c *gin.Context) {
	h.setLocked(c, true)
}

// Unlock POST /factors/unlock
func (h *FactorHandler) Unlock(c *gin.Context) {
	h.setLocked(c, false)
}

func (h *FactorHandler) setLocked(c *gin.Context, locked bool) {
	var key FactorKey
	if err := c.ShouldBindJSON(&key); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	f, err := h.svc.SetLocked(c.Request.Context(), key.Diameter, key.PerfLength, locked)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, f)
}
