package handler

import (
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

type RotaHandler struct {
	svc *service.RotaService
}

func NewRotaHandler(svc *service.RotaService) *RotaHandler {
	return &RotaHandler{svc: svc}
}

// UpdateDayRequest edits one rota day; absent fields are left unchanged.
type UpdateDayRequest struct {
	Type  *string  `json:"type"`
	Note  *string  `json:"note"`
	Hours *float64 `json:"hours"`
}

// Month GET /rota/:year/:month
func (h *RotaHandler) Month(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	month, ok := intParam(c, "month")
	if !ok {
		return
	}
	m, err := h.svc.Month(c.Request.Context(), year, month)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, m)
}

// UpdateDay PUT /rota/days/:date
func (h *RotaHandler) UpdateDay(c *gin.Context) {
	var req UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.Type == nil && req.Note == nil && req.Hours == nil {
		BadRequest(c, "Nothing to update")
		return
	}

	ctx := c.Request.Context()
	date := c.Param("date")
	var (
		day *service.RotaDay
		err error
	)
	if req.Type != nil {
		if day, err = h.svc.SetShift(ctx, date, entity.ShiftType(*req.Type)); err != nil {
			ServiceError(c, err)
			return
		}
	}
	if req.Note != nil {
		if day, err = h.svc.SetNote(ctx, date, *req.Note); err != nil {
			ServiceError(c, err)
			return
		}
	}
	if req.Hours != nil {
		if day, err = h.svc.SetHours(ctx, date, *req.Hours); err != nil {
			ServiceError(c, err)
			return
		}
	}
	Success(c, day)
}

// DeleteDay DELETE /rota/days/:date
func (h *RotaHandler) DeleteDay(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("date")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
