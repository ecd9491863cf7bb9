package handler

import (
	"errors"
	"strconv"

	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers of the dashboard.
type Handlers struct {
	Factor      *FactorHandler
	Calc        *CalcHandler
	Product     *ProductHandler
	Production  *ProductionHandler
	Unwind      *UnwindHandler
	Rota        *RotaHandler
	Thread      *ThreadHandler
	Report      *ReportHandler
	SSE         *SSEHandler
	Notes       *DocumentHandler
	GradeChange *GradeChangeHandler
	Settings    *SettingsHandler
}

func NewHandlers(svc *service.Services, hub *sse.Hub) *Handlers {
	return &Handlers{
		Factor:      NewFactorHandler(svc.Factor),
		Calc:        NewCalcHandler(svc.Factor),
		Product:     NewProductHandler(svc.Product, svc.Unwind),
		Production:  NewProductionHandler(svc.Production),
		Unwind:      NewUnwindHandler(svc.Unwind),
		Rota:        NewRotaHandler(svc.Rota),
		Thread:      NewThreadHandler(svc.Thread),
		Report:      NewReportHandler(svc.Report),
		SSE:         NewSSEHandler(hub),
		Notes:       NewDocumentHandler(svc.Notes.DocumentLibrary),
		GradeChange: NewGradeChangeHandler(svc.GradeChange),
		Settings:    NewSettingsHandler(svc.Settings),
	}
}

// RegisterRoutes mounts every endpoint under g.
func (h *Handlers) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/sse/events", h.SSE.Stream)

	factors := g.Group("/factors")
	{
		factors.GET("", h.Factor.List)
		factors.POST("", h.Factor.Create)
		factors.PUT("", h.Factor.Update)
		factors.DELETE("", h.Factor.Delete)
		factors.POST("/lock", h.Factor.Lock)
		factors.POST("/unlock", h.Factor.Unlock)
		factors.GET("/export", h.Report.ExportFactors)
		factors.POST("/import", h.Report.ImportFactors)
	}

	calc := g.Group("/calc")
	{
		calc.POST("/logs-per-minute", h.Calc.LogsPerMinute)
		calc.POST("/required-speed", h.Calc.RequiredSpeed)
		calc.POST("/runtime", h.Calc.Runtime)
		calc.POST("/length", h.Calc.Length)
		calc.POST("/speeds", h.Calc.Speeds)
	}

	products := g.Group("/products")
	{
		products.GET("", h.Product.ListFolders)
		products.GET("/active", h.Product.Active)
		products.PUT("/lock", h.Product.SetLock)
		products.POST("/folders", h.Product.CreateFolder)
		products.DELETE("/folders/:folderId", h.Product.DeleteFolder)
		products.POST("/folders/:folderId/products", h.Product.Create)
		products.PUT("/folders/:folderId/products/:productId", h.Product.Update)
		products.DELETE("/folders/:folderId/products/:productId", h.Product.Delete)
		products.POST("/folders/:folderId/products/:productId/activate", h.Product.Activate)
	}

	tables := g.Group("/tables")
	{
		tables.GET("", h.Production.List)
		tables.GET("/:id", h.Production.Get)
		tables.POST("/:id/activate", h.Production.Activate)
		tables.PUT("/:id/hours/:hour", h.Production.UpdateHour)
		tables.POST("/:id/hours/:hour/lock", h.Production.ToggleLock)
		tables.POST("/:id/target", h.Production.ApplyTarget)
		tables.POST("/:id/operator-target", h.Production.ApplyOperatorTarget)
		tables.POST("/:id/reset", h.Production.Reset)
		tables.GET("/:id/summary", h.Production.Summary)
		tables.GET("/:id/plan", h.Production.Plan)
		tables.GET("/:id/export", h.Report.ExportTable)
		tables.POST("/:id/archive", h.Report.Archive)
	}

	line := g.Group("/line")
	{
		line.GET("", h.Production.LineStatus)
		line.PUT("", h.Production.UpdateLineSettings)
		line.POST("/plan", h.Production.PlanHour)
	}

	unwinds := g.Group("/unwinds")
	{
		unwinds.GET("", h.Unwind.List)
		unwinds.PUT("/:id", h.Unwind.Update)
	}

	rota := g.Group("/rota")
	{
		rota.GET("/:year/:month", h.Rota.Month)
		rota.PUT("/days/:date", h.Rota.UpdateDay)
		rota.DELETE("/days/:date", h.Rota.DeleteDay)
	}

	h.Notes.Register(g.Group("/notes"))
	h.GradeChange.Register(g.Group("/grade-change"))

	settings := g.Group("/settings")
	{
		settings.GET("", h.Settings.Library)
		settings.GET("/saved", h.Settings.Find)
		settings.POST("/folders", h.Settings.CreateFolder)
		settings.DELETE("/folders/:folderId", h.Settings.DeleteFolder)
		settings.POST("/templates", h.Settings.CreateTemplate)
		settings.DELETE("/templates/:templateId", h.Settings.DeleteTemplate)
		settings.POST("/saved", h.Settings.Save)
		settings.POST("/saved/:savedId/duplicate", h.Settings.Duplicate)
		settings.DELETE("/saved/:savedId", h.Settings.DeleteSaved)
	}

	threads := g.Group("/threads")
	{
		threads.GET("", h.Thread.Search)
		threads.GET("/types", h.Thread.Types)
		threads.GET("/identify", h.Thread.Identify)
	}
}

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error replies with a five-digit code; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// Locked is returned for edits of locked factors, hours or product selections.
func Locked(c *gin.Context, message string) {
	Error(c, 42300, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ServiceError maps service errors onto the envelope codes.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrLocked),
		errors.Is(err, service.ErrProductLocked),
		errors.Is(err, service.ErrHourLocked):
		Locked(c, err.Error())
	case errors.Is(err, service.ErrArchiveDisabled):
		Error(c, 50300, err.Error())
	default:
		_ = c.Error(err)
		InternalError(c, err.Error())
	}
}

// intParam parses a numeric path parameter.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		BadRequest(c, "invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return v, true
}

// floatQuery parses an optional query parameter; def is used when absent.
func floatQuery(c *gin.Context, name string, def float64) (float64, bool) {
	s := c.Query(name)
	if s == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		BadRequest(c, "invalid "+name+": "+s)
		return 0, false
	}
	return v, true
}

// optional turns a calculator's (value, ok) pair into a nullable field.
func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
