package handler

import (
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc     *service.ProductService
	unwinds *service.UnwindService
}

// NewProductHandler builds the handler. Changes to the active product are
// pushed to the unwind stands through unwinds.
func NewProductHandler(svc *service.ProductService, unwinds *service.UnwindService) *ProductHandler {
	return &ProductHandler{svc: svc, unwinds: unwinds}
}

type CreateFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type LockRequest struct {
	Locked bool `json:"locked"`
}

// ListFolders GET /products
func (h *ProductHandler) ListFolders(c *gin.Context) {
	ctx := c.Request.Context()
	folders, err := h.svc.ListFolders(ctx)
	if err != nil {
		ServiceError(c, err)
		return
	}
	locked, err := h.svc.IsLocked(ctx)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": folders, "locked": locked})
}

// Active GET /products/active
func (h *ProductHandler) Active(c *gin.Context) {
	product, err := h.svc.ActiveProduct(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"product": product})
}

// SetLock PUT /products/lock
func (h *ProductHandler) SetLock(c *gin.Context) {
	var req LockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if err := h.svc.SetLocked(c.Request.Context(), req.Locked); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"locked": req.Locked})
}

// CreateFolder POST /products/folders
func (h *ProductHandler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	folder, err := h.svc.AddFolder(c.Request.Context(), req.Name)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, folder)
}

// DeleteFolder DELETE /products/folders/:folderId
func (h *ProductHandler) DeleteFolder(c *gin.Context) {
	if err := h.svc.DeleteFolder(c.Request.Context(), c.Param("folderId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Create POST /products/folders/:folderId/products
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	product, err := h.svc.AddProduct(c.Request.Context(), c.Param("folderId"), &input)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, product)
}

// Update PUT /products/folders/:folderId/products/:productId
func (h *ProductHandler) Update(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("folderId"), c.Param("productId"), &input)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if product.IsActive {
		h.syncUnwinds(c)
	}
	Success(c, product)
}

// Delete DELETE /products/folders/:folderId/products/:productId
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("folderId"), c.Param("productId")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Activate POST /products/folders/:folderId/products/:productId/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	product, err := h.svc.SetActive(c.Request.Context(), c.Param("folderId"), c.Param("productId"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	h.syncUnwinds(c)
	Success(c, product)
}

// syncUnwinds failures are logged with the request; the product change stands.
func (h *ProductHandler) syncUnwinds(c *gin.Context) {
	if h.unwinds == nil {
		return
	}
	if err := h.unwinds.SyncPaperMachines(c.Request.Context()); err != nil {
		_ = c.Error(err)
	}
}
