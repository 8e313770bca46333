// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"time"

	"github.com/lumexa/product-sdk/internal/domain"
)

// ProductStore persists products. List results keep insertion order.
//
// Create and Update return domain.ErrConflict when the slug is taken by
// another product. Lookups by id or slug return domain.ErrNotFound.
type ProductStore interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)

	// DeleteProduct also removes the product's variants and images.
	DeleteProduct(ctx context.Context, id string) error
}

// ProductTypeStore persists product types.
type ProductTypeStore interface {
	ListProductTypes(ctx context.Context) ([]domain.ProductType, error)
	GetProductType(ctx context.Context, id string) (domain.ProductType, error)
	CreateProductType(ctx context.Context, productType domain.ProductType) (domain.ProductType, error)
	UpdateProductType(ctx context.Context, productType domain.ProductType) (domain.ProductType, error)

	// DeleteProductType returns domain.ErrConflict while products reference it.
	DeleteProductType(ctx context.Context, id string) error
}

// VariantStore persists variants. SKUs are unique across all products.
type VariantStore interface {
	ListVariants(ctx context.Context, productID string) ([]domain.Variant, error)
	GetVariant(ctx context.Context, productID, variantID string) (domain.Variant, error)
	CreateVariant(ctx context.Context, variant domain.Variant) (domain.Variant, error)
	UpdateVariant(ctx context.Context, variant domain.Variant) (domain.Variant, error)
	DeleteVariant(ctx context.Context, productID, variantID string) error
}

// ImageStore persists images. ListImages orders by Order, then insertion.
type ImageStore interface {
	ListImages(ctx context.Context, productID string) ([]domain.Image, error)
	CreateImage(ctx context.Context, image domain.Image) (domain.Image, error)
	DeleteImage(ctx context.Context, productID, imageID string) error
}

// CategoryStore persists categories and assigns their integer ids.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)

	// DeleteCategory detaches child categories from the deleted parent.
	DeleteCategory(ctx context.Context, id int64) error
}

// CatalogStore is everything the catalog service persists.
type CatalogStore interface {
	ProductStore
	ProductTypeStore
	VariantStore
	ImageStore
	CategoryStore
}

// IDGenerator produces string identifiers for new records.
type IDGenerator interface {
	NewID() string
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}
