package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumexa/product-sdk/internal/domain"
)

// Seed fills an empty catalog with a small demo data set: one product type,
// an available and a future product with variants and images, and a
// two-level category tree. A catalog that already has products is left
// alone.
func (s *CatalogService) Seed(ctx context.Context) error {
	existing, err := s.store.ListProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return fmt.Errorf("checking catalog: %w", err)
	}

	if len(existing) > 0 {
		return nil
	}

	apparel, err := s.CreateProductType(ctx, domain.ProductTypeChanges{Name: ptr("Apparel")})
	if err != nil {
		return fmt.Errorf("seeding product type: %w", err)
	}

	shirt, err := s.CreateProduct(ctx, domain.ProductChanges{
		Name:          ptr("Classic T-Shirt"),
		Description:   ptr("Heavyweight cotton tee."),
		Price:         ptr(19.99),
		ProductTypeID: &apparel.ID,
	})
	if err != nil {
		return fmt.Errorf("seeding product: %w", err)
	}

	for _, v := range []domain.VariantChanges{
		{SKU: ptr("TSHIRT-BLK-M"), Stock: ptr[int64](12), Attributes: map[string]any{"color": "black", "size": "M"}},
		{SKU: ptr("TSHIRT-WHT-L"), Stock: ptr[int64](4), Attributes: map[string]any{"color": "white", "size": "L"}},
	} {
		if _, err := s.CreateVariant(ctx, shirt.ID, v); err != nil {
			return fmt.Errorf("seeding variant: %w", err)
		}
	}

	if _, err := s.CreateImage(ctx, shirt.ID, domain.ImageChanges{
		Name: ptr("front"),
		Path: ptr("products/classic-t-shirt/front.jpg"),
	}); err != nil {
		return fmt.Errorf("seeding image: %w", err)
	}

	launch := s.now().Add(30 * 24 * time.Hour)
	if _, err := s.CreateProduct(ctx, domain.ProductChanges{
		Name:          ptr("Winter Parka"),
		Price:         ptr(149.0),
		AvailableAt:   &launch,
		ProductTypeID: &apparel.ID,
	}); err != nil {
		return fmt.Errorf("seeding future product: %w", err)
	}

	clothing, err := s.CreateCategory(ctx, domain.CategoryChanges{Name: ptr("Clothing"), Position: ptr[int64](1)})
	if err != nil {
		return fmt.Errorf("seeding category: %w", err)
	}

	if _, err := s.CreateCategory(ctx, domain.CategoryChanges{
		Name:     ptr("Shirts"),
		ParentID: &clothing.ID,
		Position: ptr[int64](1),
	}); err != nil {
		return fmt.Errorf("seeding category: %w", err)
	}

	s.log(ctx, "Seed").InfoContext(ctx, "catalog seeded", slog.String("product_type_id", apparel.ID))

	return nil
}

func ptr[T any](v T) *T {
	return &v
}
