package catalog

import (
	"context"
	"net/http"
)

const productTypesPath = "/api/product-types"

// ListProductTypes returns every product type in server order.
func (c *Client) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	return fetchList(ctx, c, request{method: http.MethodGet, path: productTypesPath}, "product_types", decodeProductType)
}

// GetProductType fetches one product type by id.
func (c *Client) GetProductType(ctx context.Context, id string) (ProductType, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodGet,
		path:   productTypesPath + resourcePath(id),
	}, "product_type", decodeProductType)
}

// CreateProductType creates a product type and returns the stored record.
func (c *Client) CreateProductType(ctx context.Context, in ProductTypeInput) (ProductType, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPost,
		path:   productTypesPath,
		body:   bodyOf(in.ToValue()),
	}, "product_type", decodeProductType)
}

// UpdateProductType replaces the set fields of a product type with PUT.
func (c *Client) UpdateProductType(ctx context.Context, id string, in ProductTypeInput) (ProductType, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPut,
		path:   productTypesPath + resourcePath(id),
		body:   bodyOf(in.ToValue()),
	}, "product_type", decodeProductType)
}

// DeleteProductType removes a product type.
func (c *Client) DeleteProductType(ctx context.Context, id string) error {
	return c.exec(ctx, request{method: http.MethodDelete, path: productTypesPath + resourcePath(id)})
}
