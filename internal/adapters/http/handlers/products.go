package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
)

// ListProducts handles GET /api/products. ?is_active=1 keeps active
// products only.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var query dto.ProductListQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), query.Filter())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.List(products, dto.Product))
}

// ListFutureProducts handles GET /api/products/future.
func (h *CatalogHandler) ListFutureProducts(c *gin.Context) {
	products, err := h.service.ListFutureProducts(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.List(products, dto.Product))
}

// GetProduct handles GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Product(product))
}

// GetProductBySlug handles GET /api/products/slug/:slug.
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.service.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Product(product))
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bind(c, &req) {
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusCreated, dto.Product(product))
}

// UpdateProduct handles PUT and PATCH /api/products/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bind(c, &req) {
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), req.Changes())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.RespondData(c, http.StatusOK, dto.Product(product))
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	noContent(c)
}
