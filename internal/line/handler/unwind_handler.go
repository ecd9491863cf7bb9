package handler

import (
	"time"

	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

type UnwindHandler struct {
	svc *service.UnwindService
	now func() time.Time
}

func NewUnwindHandler(svc *service.UnwindService) *UnwindHandler {
	return &UnwindHandler{svc: svc, now: time.Now}
}

// List GET /unwinds
func (h *UnwindHandler) List(c *gin.Context) {
	snaps, err := h.svc.Snapshot(c.Request.Context(), h.now())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": snaps})
}

// Update PUT /unwinds/:id
func (h *UnwindHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input service.UnwindInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	state, err := h.svc.Update(c.Request.Context(), id, &input)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, state)
}
