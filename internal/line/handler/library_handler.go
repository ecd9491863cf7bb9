package handler

import (
	"strconv"

	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

// DocumentHandler serves one folder tree library. It is mounted for the
// troubleshooting notes and, through GradeChangeHandler, for grade changes.
type DocumentHandler struct {
	lib *service.DocumentLibrary
}

func NewDocumentHandler(lib *service.DocumentLibrary) *DocumentHandler {
	return &DocumentHandler{lib: lib}
}

type CreateDocFolderRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id"`
}

// Register mounts the library routes on g.
func (h *DocumentHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Tree)
	g.GET("/search", h.Search)
	g.POST("/folders", h.CreateFolder)
	g.DELETE("/folders/:folderId", h.DeleteFolder)
	g.POST("/folders/:folderId/items", h.AddItem)
	g.PUT("/items/:itemId", h.UpdateItem)
	g.DELETE("/items/:itemId", h.DeleteItem)
}

// Tree GET /
func (h *DocumentHandler) Tree(c *gin.Context) {
	folders, err := h.lib.Tree(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": folders, "types": h.lib.Types()})
}

// Search GET /search?q=&folder=
func (h *DocumentHandler) Search(c *gin.Context) {
	matches, err := h.lib.Search(c.Request.Context(), c.Query("q"), c.Query("folder"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": matches})
}

// CreateFolder POST /folders
func (h *DocumentHandler) CreateFolder(c *gin.Context) {
	var req CreateDocFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	folder, err := h.lib.CreateFolder(c.Request.Context(), req.ParentID, req.Name)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, folder)
}

// DeleteFolder DELETE /folders/:folderId
func (h *DocumentHandler) DeleteFolder(c *gin.Context) {
	if err := h.lib.DeleteFolder(c.Request.Context(), c.Param("folderId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// AddItem POST /folders/:folderId/items
func (h *DocumentHandler) AddItem(c *gin.Context) {
	var req service.DocItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	item, err := h.lib.AddItem(c.Request.Context(), c.Param("folderId"), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, item)
}

// UpdateItem PUT /items/:itemId
func (h *DocumentHandler) UpdateItem(c *gin.Context) {
	var req service.DocItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	item, err := h.lib.UpdateItem(c.Request.Context(), c.Param("itemId"), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, item)
}

// DeleteItem DELETE /items/:itemId
func (h *DocumentHandler) DeleteItem(c *gin.Context) {
	if err := h.lib.DeleteItem(c.Request.Context(), c.Param("itemId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// GradeChangeHandler adds the checklist endpoints to the grade change library.
type GradeChangeHandler struct {
	*DocumentHandler
	svc *service.GradeChangeService
}

func NewGradeChangeHandler(svc *service.GradeChangeService) *GradeChangeHandler {
	return &GradeChangeHandler{DocumentHandler: NewDocumentHandler(svc.DocumentLibrary), svc: svc}
}

func (h *GradeChangeHandler) Register(g *gin.RouterGroup) {
	h.DocumentHandler.Register(g)
	g.POST("/items/:itemId/steps/:index/toggle", h.ToggleStep)
	g.POST("/items/:itemId/reset", h.ResetChecklist)
}

// ToggleStep POST /items/:itemId/steps/:index/toggle
func (h *GradeChangeHandler) ToggleStep(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		BadRequest(c, "invalid index: "+c.Param("index"))
		return
	}
	item, err := h.svc.ToggleStep(c.Request.Context(), c.Param("itemId"), index)
	if err != nil {
		ServiceError(c, err)
		return
	}
	done, total := service.ChecklistProgress(*item)
	Success(c, gin.H{"item": item, "done": done, "total": total})
}

// ResetChecklist POST /items/:itemId/reset
func (h *GradeChangeHandler) ResetChecklist(c *gin.Context) {
	item, err := h.svc.ResetChecklist(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	done, total := service.ChecklistProgress(*item)
	Success(c, gin.H{"item": item, "done": done, "total": total})
}
