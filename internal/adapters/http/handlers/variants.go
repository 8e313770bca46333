package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
)

func (h *CatalogHandler) ListVariants(c *gin.Context) {
	variants, err := h.service.ListVariants(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.List(variants, dto.Variant))
}

func (h *CatalogHandler) GetVariant(c *gin.Context) {
	variant, err := h.service.GetVariant(c.Request.Context(), c.Param("id"), c.Param("variantId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Variant(variant))
}

func (h *CatalogHandler) CreateVariant(c *gin.Context) {
	var req dto.CreateVariantRequest
	if !bind(c, &req) {
		return
	}

	variant, err := h.service.CreateVariant(c.Request.Context(), c.Param("id"), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusCreated, dto.Variant(variant))
}

func (h *CatalogHandler) UpdateVariant(c *gin.Context) {
	var req dto.UpdateVariantRequest
	if !bind(c, &req) {
		return
	}

	variant, err := h.service.UpdateVariant(c.Request.Context(), c.Param("id"), c.Param("variantId"), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Variant(variant))
}

func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	if err := h.service.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("variantId")); err != nil {
		dto.HandleError(c, err)
		return
	}

	noContent(c)
}

func (h *CatalogHandler) CreateImage(c *gin.Context) {
	var req dto.CreateImageRequest
	if !bind(c, &req) {
		return
	}

	image, err := h.service.CreateImage(c.Request.Context(), c.Param("id"), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusCreated, dto.Image(image))
}

func (h *CatalogHandler) DeleteImage(c *gin.Context) {
	if err := h.service.DeleteImage(c.Request.Context(), c.Param("id"), c.Param("imageId")); err != nil {
		dto.HandleError(c, err)
		return
	}

	noContent(c)
}
