package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
	"github.com/lumexa/product-sdk/internal/app"
)

// CatalogHandler serves the catalog API under /api.
type CatalogHandler struct {
	service *app.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes on rg:
//   - /products, /products/future, /products/slug/:slug, /products/:id
//   - /products/:id/variants[/:variantId], /products/:id/images[/:imageId]
//   - /product-types[/:id]
//   - /product-categories[/:id]
//
// PUT and PATCH both apply partial updates.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.GET("/future", h.ListFutureProducts)
	products.GET("/slug/:slug", h.GetProductBySlug)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.PATCH("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	products.GET("/:id/variants", h.ListVariants)
	products.POST("/:id/variants", h.CreateVariant)
	products.GET("/:id/variants/:variantId", h.GetVariant)
	products.PUT("/:id/variants/:variantId", h.UpdateVariant)
	products.PATCH("/:id/variants/:variantId", h.UpdateVariant)
	products.DELETE("/:id/variants/:variantId", h.DeleteVariant)

	products.POST("/:id/images", h.CreateImage)
	products.DELETE("/:id/images/:imageId", h.DeleteImage)

	types := rg.Group("/product-types")
	types.GET("", h.ListProductTypes)
	types.POST("", h.CreateProductType)
	types.GET("/:id", h.GetProductType)
	types.PUT("/:id", h.UpdateProductType)
	types.PATCH("/:id", h.UpdateProductType)
	types.DELETE("/:id", h.DeleteProductType)

	categories := rg.Group("/product-categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.GET("/:id", h.GetCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.PATCH("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
}

// bind decodes and validates the body into req, writing the error
// response itself when that fails.
func bind(c *gin.Context, req any) bool {
	if err := dto.BindAndValidate(c, req); err != nil {
		dto.HandleError(c, err)
		return false
	}

	return true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
