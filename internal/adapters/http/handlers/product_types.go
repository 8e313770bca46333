package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
)

func (h *CatalogHandler) ListProductTypes(c *gin.Context) {
	types, err := h.service.ListProductTypes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.List(types, dto.ProductType))
}

func (h *CatalogHandler) GetProductType(c *gin.Context) {
	pt, err := h.service.GetProductType(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.ProductType(pt))
}

func (h *CatalogHandler) CreateProductType(c *gin.Context) {
	var req dto.CreateProductTypeRequest
	if !bind(c, &req) {
		return
	}

	pt, err := h.service.CreateProductType(c.Request.Context(), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusCreated, dto.ProductType(pt))
}

func (h *CatalogHandler) UpdateProductType(c *gin.Context) {
	var req dto.UpdateProductTypeRequest
	if !bind(c, &req) {
		return
	}

	pt, err := h.service.UpdateProductType(c.Request.Context(), c.Param("id"), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.ProductType(pt))
}

// DeleteProductType handles DELETE /api/product-types/:id. A type still used
// by products yields 409.
func (h *CatalogHandler) DeleteProductType(c *gin.Context) {
	if err := h.service.DeleteProductType(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	noContent(c)
}
