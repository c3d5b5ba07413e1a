package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"titlehub/internal/api/dto"
	"titlehub/internal/api/models"
	"titlehub/internal/api/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// RegisterRoutes: reads are open, writes are admin-only. Categories are
// label-only resources: no update.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", auth, admin, h.Create)
	rg.DELETE("/:slug", auth, admin, h.Delete)
}

// List retrieves categories with pagination and exact-match name search
// GET /api/v1/categories?search=&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := dto.PageParams(c)

	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, item := range list {
		resp = append(resp, dto.CategoryFromModel(item))
	}
	c.JSON(http.StatusOK, dto.NewPage(c, total, page, pageSize, resp))
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.svc.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(category))
}

// Delete removes a category; titles referencing it keep existing with a
// null category
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
