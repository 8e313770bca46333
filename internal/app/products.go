package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumexa/product-sdk/internal/domain"
)

// ListProducts returns products with their details, in creation order.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetails, error) {
	products, err := s.store.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return s.detailsOf(ctx, products)
}

// ListFutureProducts returns products whose availability date is still
// ahead.
func (s *CatalogService) ListFutureProducts(ctx context.Context) ([]domain.ProductDetails, error) {
	products, err := s.store.ListProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	now := s.now()
	future := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if p.IsFuture(now) {
			future = append(future, p)
		}
	}

	return s.detailsOf(ctx, future)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.ProductDetails, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("getting product: %w", err)
	}

	return s.details(ctx, p)
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (domain.ProductDetails, error) {
	p, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("getting product by slug: %w", err)
	}

	return s.details(ctx, p)
}

// CreateProduct stores a new product. The slug defaults to the slugified
// name and the product is active unless told otherwise.
func (s *CatalogService) CreateProduct(ctx context.Context, in domain.ProductChanges) (domain.ProductDetails, error) {
	fields := map[string][]string{}
	requireText(fields, "name", in.Name)

	if in.Name != nil && *in.Name != "" && slugFor(in.Slug, *in.Name) == "" {
		fields["slug"] = append(fields["slug"], "The slug could not be derived from the name.")
	}

	s.checkProductType(ctx, fields, in.ProductTypeID)

	if err := fieldsError(fields); err != nil {
		return domain.ProductDetails{}, err
	}

	now := s.now()
	p := domain.Product{
		Name:          *in.Name,
		Slug:          slugFor(in.Slug, *in.Name),
		Description:   in.Description,
		Price:         in.Price,
		IsActive:      valueOr(in.IsActive, true),
		AvailableAt:   in.AvailableAt,
		ProductTypeID: in.ProductTypeID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("creating product: %w", err)
	}

	s.log(ctx, "CreateProduct").InfoContext(ctx, "product created",
		slog.String("product_id", created.ID),
		slog.String("slug", created.Slug),
	)

	return s.details(ctx, created)
}

// UpdateProduct applies the set fields of in to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in domain.ProductChanges) (domain.ProductDetails, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("getting product: %w", err)
	}

	fields := map[string][]string{}
	if in.Name != nil {
		requireText(fields, "name", in.Name)
	}

	if in.Slug != nil {
		requireText(fields, "slug", in.Slug)
	}

	s.checkProductType(ctx, fields, in.ProductTypeID)

	if err := fieldsError(fields); err != nil {
		return domain.ProductDetails{}, err
	}

	p.Name = valueOr(in.Name, p.Name)
	p.Slug = valueOr(in.Slug, p.Slug)
	p.IsActive = valueOr(in.IsActive, p.IsActive)

	if in.Description != nil {
		p.Description = in.Description
	}

	if in.Price != nil {
		p.Price = in.Price
	}

	if in.AvailableAt != nil {
		p.AvailableAt = in.AvailableAt
	}

	if in.ProductTypeID != nil {
		p.ProductTypeID = in.ProductTypeID
	}

	p.UpdatedAt = s.now()

	updated, err := s.store.UpdateProduct(ctx, p)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("updating product: %w", err)
	}

	s.log(ctx, "UpdateProduct").InfoContext(ctx, "product updated", slog.String("product_id", id))

	return s.details(ctx, updated)
}

// DeleteProduct removes a product with its variants and images.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	s.log(ctx, "DeleteProduct").InfoContext(ctx, "product deleted", slog.String("product_id", id))

	return nil
}

// checkProductType adds a field error when id names no product type.
func (s *CatalogService) checkProductType(ctx context.Context, fields map[string][]string, id *string) {
	if id == nil {
		return
	}

	if _, err := s.store.GetProductType(ctx, *id); err != nil {
		if domain.IsNotFound(err) {
			fields["product_type_id"] = append(fields["product_type_id"], "The selected product type id is invalid.")
			return
		}

		fields["product_type_id"] = append(fields["product_type_id"], "The product type could not be checked.")
		s.log(ctx, "checkProductType").WarnContext(ctx, "product type lookup failed", slog.Any("error", err))
	}
}
