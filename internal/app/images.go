package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumexa/product-sdk/internal/domain"
)

// CreateImage attaches an image to a product. Without an explicit order
// the image goes after the existing ones.
func (s *CatalogService) CreateImage(ctx context.Context, productID string, in domain.ImageChanges) (domain.Image, error) {
	fields := map[string][]string{}
	requireText(fields, "name", in.Name)
	requireText(fields, "path", in.Path)

	if in.Order != nil && *in.Order < 0 {
		fields["order"] = append(fields["order"], "The order field must be at least 0.")
	}

	if err := fieldsError(fields); err != nil {
		return domain.Image{}, err
	}

	order := in.Order
	if order == nil {
		existing, err := s.store.ListImages(ctx, productID)
		if err != nil {
			return domain.Image{}, fmt.Errorf("listing images: %w", err)
		}

		next := int64(len(existing))
		order = &next
	}

	created, err := s.store.CreateImage(ctx, domain.Image{
		ProductID: productID,
		Name:      *in.Name,
		Path:      *in.Path,
		Order:     *order,
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("creating image: %w", err)
	}

	s.log(ctx, "CreateImage").InfoContext(ctx, "image created",
		slog.String("product_id", productID),
		slog.String("image_id", created.ID),
	)

	return created, nil
}

func (s *CatalogService) DeleteImage(ctx context.Context, productID, imageID string) error {
	if err := s.store.DeleteImage(ctx, productID, imageID); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}
