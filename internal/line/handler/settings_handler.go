package handler

import (
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc *service.SettingsTemplateService
}

func NewSettingsHandler(svc *service.SettingsTemplateService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type CreateSettingsFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

// Library GET /settings
func (h *SettingsHandler) Library(c *gin.Context) {
	lib, err := h.svc.Library(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, lib)
}

// Find GET /settings/saved?template=&folder=&q=
func (h *SettingsHandler) Find(c *gin.Context) {
	found, err := h.svc.Find(c.Request.Context(), service.SettingsFilter{
		TemplateID: c.Query("template"),
		FolderID:   c.Query("folder"),
		Query:      c.Query("q"),
	})
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": found})
}

// CreateFolder POST /settings/folders
func (h *SettingsHandler) CreateFolder(c *gin.Context) {
	var req CreateSettingsFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	folder, err := h.svc.CreateFolder(c.Request.Context(), req.Name)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, folder)
}

// DeleteFolder DELETE /settings/folders/:folderId
func (h *SettingsHandler) DeleteFolder(c *gin.Context) {
	if err := h.svc.DeleteFolder(c.Request.Context(), c.Param("folderId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// CreateTemplate POST /settings/templates
func (h *SettingsHandler) CreateTemplate(c *gin.Context) {
	var req service.TemplateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	tmpl, err := h.svc.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, tmpl)
}

// DeleteTemplate DELETE /settings/templates/:templateId
func (h *SettingsHandler) DeleteTemplate(c *gin.Context) {
	if err := h.svc.DeleteTemplate(c.Request.Context(), c.Param("templateId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Save POST /settings/saved
func (h *SettingsHandler) Save(c *gin.Context) {
	var req service.SettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	saved, err := h.svc.Save(c.Request.Context(), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, saved)
}

// Duplicate POST /settings/saved/:savedId/duplicate
func (h *SettingsHandler) Duplicate(c *gin.Context) {
	dup, err := h.svc.Duplicate(c.Request.Context(), c.Param("savedId"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, dup)
}

// DeleteSaved DELETE /settings/saved/:savedId
func (h *SettingsHandler) DeleteSaved(c *gin.Context) {
	if err := h.svc.DeleteSaved(c.Request.Context(), c.Param("savedId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
