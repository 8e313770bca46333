package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumexa/product-sdk/internal/domain"
)

func (s *CatalogService) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	types, err := s.store.ListProductTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing product types: %w", err)
	}

	return types, nil
}

func (s *CatalogService) GetProductType(ctx context.Context, id string) (domain.ProductType, error) {
	pt, err := s.store.GetProductType(ctx, id)
	if err != nil {
		return domain.ProductType{}, fmt.Errorf("getting product type: %w", err)
	}

	return pt, nil
}

func (s *CatalogService) CreateProductType(ctx context.Context, in domain.ProductTypeChanges) (domain.ProductType, error) {
	fields := map[string][]string{}
	requireText(fields, "name", in.Name)

	if err := fieldsError(fields); err != nil {
		return domain.ProductType{}, err
	}

	now := s.now()

	created, err := s.store.CreateProductType(ctx, domain.ProductType{
		Name:      *in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.ProductType{}, fmt.Errorf("creating product type: %w", err)
	}

	s.log(ctx, "CreateProductType").InfoContext(ctx, "product type created", slog.String("product_type_id", created.ID))

	return created, nil
}

func (s *CatalogService) UpdateProductType(ctx context.Context, id string, in domain.ProductTypeChanges) (domain.ProductType, error) {
	pt, err := s.store.GetProductType(ctx, id)
	if err != nil {
		return domain.ProductType{}, fmt.Errorf("getting product type: %w", err)
	}

	if in.Name != nil {
		fields := map[string][]string{}
		requireText(fields, "name", in.Name)

		if err := fieldsError(fields); err != nil {
			return domain.ProductType{}, err
		}

		pt.Name = *in.Name
	}

	pt.UpdatedAt = s.now()

	updated, err := s.store.UpdateProductType(ctx, pt)
	if err != nil {
		return domain.ProductType{}, fmt.Errorf("updating product type: %w", err)
	}

	return updated, nil
}

// DeleteProductType fails with a conflict while products still use the type.
func (s *CatalogService) DeleteProductType(ctx context.Context, id string) error {
	if err := s.store.DeleteProductType(ctx, id); err != nil {
		return fmt.Errorf("deleting product type: %w", err)
	}

	s.log(ctx, "DeleteProductType").InfoContext(ctx, "product type deleted", slog.String("product_type_id", id))

	return nil
}
