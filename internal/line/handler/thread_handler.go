package handler

import (
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

type ThreadHandler struct {
	svc *service.ThreadService
}

func NewThreadHandler(svc *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{svc: svc}
}

// Search GET /threads?q=
func (h *ThreadHandler) Search(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.Search(c.Query("q"))})
}

// Types GET /threads/types
func (h *ThreadHandler) Types(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.Types()})
}

// Identify GET /threads/identify?diameter=&tpi=&tolerance=&tpi_tolerance=&mode=
func (h *ThreadHandler) Identify(c *gin.Context) {
	q := service.IdentifyQuery{Mode: c.Query("mode")}
	var ok bool
	if q.Diameter, ok = floatQuery(c, "diameter", 0); !ok {
		return
	}
	if q.TPI, ok = floatQuery(c, "tpi", 0); !ok {
		return
	}
	if q.Tolerance, ok = floatQuery(c, "tolerance", service.DefaultDiameterTolerance); !ok {
		return
	}
	if q.TPITolerance, ok = floatQuery(c, "tpi_tolerance", service.DefaultTPITolerance); !ok {
		return
	}

	threads, err := h.svc.Identify(q)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": threads})
}
