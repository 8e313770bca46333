package catalog

import (
	"context"
	"net/http"
)

func variantsPath(productID string, rest ...string) string {
	return productsPath + resourcePath(append([]string{productID, "variants"}, rest...)...)
}

func imagesPath(productID string, rest ...string) string {
	return productsPath + resourcePath(append([]string{productID, "images"}, rest...)...)
}

// ListVariants returns the variants of a product.
func (c *Client) ListVariants(ctx context.Context, productID string) ([]ProductVariant, error) {
	return fetchList(ctx, c, request{
		method: http.MethodGet,
		path:   variantsPath(productID),
	}, "variants", decodeProductVariant)
}

// GetVariant fetches one variant of a product.
func (c *Client) GetVariant(ctx context.Context, productID, variantID string) (ProductVariant, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodGet,
		path:   variantsPath(productID, variantID),
	}, "variant", decodeProductVariant)
}

// CreateVariant adds a variant to a product.
func (c *Client) CreateVariant(ctx context.Context, productID string, in VariantInput) (ProductVariant, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPost,
		path:   variantsPath(productID),
		body:   bodyOf(in.ToValue()),
	}, "variant", decodeProductVariant)
}

// UpdateVariant sends the set fields of in and returns the updated variant.
func (c *Client) UpdateVariant(ctx context.Context, productID, variantID string, in VariantInput) (ProductVariant, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPut,
		path:   variantsPath(productID, variantID),
		body:   bodyOf(in.ToValue()),
	}, "variant", decodeProductVariant)
}

// DeleteVariant removes a variant from a product.
func (c *Client) DeleteVariant(ctx context.Context, productID, variantID string) error {
	return c.exec(ctx, request{method: http.MethodDelete, path: variantsPath(productID, variantID)})
}

// CreateImage attaches an image to a product.
func (c *Client) CreateImage(ctx context.Context, productID string, in ImageInput) (ProductImage, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPost,
		path:   imagesPath(productID),
		body:   bodyOf(in.ToValue()),
	}, "image", decodeProductImage)
}

// DeleteImage removes an image from a product.
func (c *Client) DeleteImage(ctx context.Context, productID, imageID string) error {
	return c.exec(ctx, request{method: http.MethodDelete, path: imagesPath(productID, imageID)})
}
