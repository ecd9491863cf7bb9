package handler

import (
	"time"

	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type ReportHandler struct {
	svc *service.ReportService
	now func() time.Time
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc, now: time.Now}
}

// ExportTable GET /tables/:id/export
func (h *ReportHandler) ExportTable(c *gin.Context) {
	f, filename, err := h.svc.ExportTable(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		ServiceError(c, err)
		return
	}
	defer f.Close()
	writeWorkbook(c, f, filename)
}

// ExportFactors GET /factors/export
func (h *ReportHandler) ExportFactors(c *gin.Context) {
	f, filename, err := h.svc.ExportFactors(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	defer f.Close()
	writeWorkbook(c, f, filename)
}

// ImportFactors POST /factors/import
func (h *ReportHandler) ImportFactors(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "An Excel file is required")
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		BadRequest(c, "Cannot read Excel file: "+err.Error())
		return
	}
	defer f.Close()

	result, err := h.svc.ImportFactors(c.Request.Context(), f)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, result)
}

// Archive POST /tables/:id/archive
func (h *ReportHandler) Archive(c *gin.Context) {
	result, err := h.svc.Archive(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, result)
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", service.XLSXContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
