package catalog

import (
	"context"
	"net/http"
	"net/url"
)

const productsPath = "/api/products"

// ListProducts returns every product in server order.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	return fetchList(ctx, c, request{method: http.MethodGet, path: productsPath}, "products", decodeProduct)
}

// ListActiveProducts returns the products the server reports as active.
// Filtering happens on the server through the is_active query parameter.
func (c *Client) ListActiveProducts(ctx context.Context) ([]Product, error) {
	return fetchList(ctx, c, request{
		method: http.MethodGet,
		path:   productsPath,
		query:  url.Values{"is_active": {"1"}},
	}, "products", decodeProduct)
}

// ListFutureProducts returns products scheduled to become available later.
func (c *Client) ListFutureProducts(ctx context.Context) ([]Product, error) {
	return fetchList(ctx, c, request{method: http.MethodGet, path: productsPath + "/future"}, "products", decodeProduct)
}

// GetProduct fetches a product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodGet,
		path:   productsPath + resourcePath(id),
	}, "product", decodeProduct)
}

// GetProductBySlug fetches a product by its slug.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodGet,
		path:   productsPath + resourcePath("slug", slug),
	}, "product", decodeProduct)
}

// CreateProduct creates a product and returns it as stored by the server.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPost,
		path:   productsPath,
		body:   bodyOf(in.ToValue()),
	}, "product", decodeProduct)
}

// UpdateProduct sends the set fields of in and returns the updated product.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPut,
		path:   productsPath + resourcePath(id),
		body:   bodyOf(in.ToValue()),
	}, "product", decodeProduct)
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.exec(ctx, request{method: http.MethodDelete, path: productsPath + resourcePath(id)})
}
