package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumexa/product-sdk/internal/domain"
)

func (s *CatalogService) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	variants, err := s.store.ListVariants(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}

	return variants, nil
}

func (s *CatalogService) GetVariant(ctx context.Context, productID, variantID string) (domain.Variant, error) {
	v, err := s.store.GetVariant(ctx, productID, variantID)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("getting variant: %w", err)
	}

	return v, nil
}

// CreateVariant adds a variant to a product. Stock defaults to zero and
// attributes to an empty map.
func (s *CatalogService) CreateVariant(ctx context.Context, productID string, in domain.VariantChanges) (domain.Variant, error) {
	fields := map[string][]string{}
	requireText(fields, "sku", in.SKU)
	checkStock(fields, in.Stock)

	if err := fieldsError(fields); err != nil {
		return domain.Variant{}, err
	}

	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	now := s.now()

	created, err := s.store.CreateVariant(ctx, domain.Variant{
		ProductID:  productID,
		SKU:        *in.SKU,
		Stock:      valueOr(in.Stock, 0),
		Attributes: attrs,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return domain.Variant{}, fmt.Errorf("creating variant: %w", err)
	}

	s.log(ctx, "CreateVariant").InfoContext(ctx, "variant created",
		slog.String("product_id", productID),
		slog.String("variant_id", created.ID),
		slog.String("sku", created.SKU),
	)

	return created, nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, productID, variantID string, in domain.VariantChanges) (domain.Variant, error) {
	v, err := s.store.GetVariant(ctx, productID, variantID)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("getting variant: %w", err)
	}

	fields := map[string][]string{}
	if in.SKU != nil {
		requireText(fields, "sku", in.SKU)
	}

	checkStock(fields, in.Stock)

	if err := fieldsError(fields); err != nil {
		return domain.Variant{}, err
	}

	v.SKU = valueOr(in.SKU, v.SKU)
	v.Stock = valueOr(in.Stock, v.Stock)

	if in.Attributes != nil {
		v.Attributes = in.Attributes
	}

	v.UpdatedAt = s.now()

	updated, err := s.store.UpdateVariant(ctx, v)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("updating variant: %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteVariant(ctx context.Context, productID, variantID string) error {
	if err := s.store.DeleteVariant(ctx, productID, variantID); err != nil {
		return fmt.Errorf("deleting variant: %w", err)
	}

	s.log(ctx, "DeleteVariant").InfoContext(ctx, "variant deleted",
		slog.String("product_id", productID),
		slog.String("variant_id", variantID),
	)

	return nil
}

func checkStock(fields map[string][]string, stock *int64) {
	if stock != nil && *stock < 0 {
		fields["stock"] = append(fields["stock"], "The stock field must be at least 0.")
	}
}
