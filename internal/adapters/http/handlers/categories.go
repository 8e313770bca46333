package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
	"github.com/lumexa/product-sdk/internal/domain"
)

// categoryID parses the :id parameter. A non-numeric id names no category.
func categoryID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		dto.HandleError(c, domain.NewNotFoundError(domain.EntityCategory, raw))
		return 0, false
	}

	return id, true
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.List(categories, dto.Category))
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	category, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Category(category))
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bind(c, &req) {
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusCreated, dto.Category(category))
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !bind(c, &req) {
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Category(category))
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	noContent(c)
}
