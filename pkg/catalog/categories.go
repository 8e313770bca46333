package catalog

import (
	"context"
	"net/http"
	"strconv"
)

const categoriesPath = "/api/product-categories"

func categoryPath(id int64) string {
	return categoriesPath + resourcePath(strconv.FormatInt(id, 10))
}

// ListCategories returns every category. The tree is flattened; use
// ParentID to rebuild it.
func (c *Client) ListCategories(ctx context.Context) ([]ProductCategory, error) {
	return fetchList(ctx, c, request{method: http.MethodGet, path: categoriesPath}, "categories", decodeProductCategory)
}

// GetCategory fetches a category by id. The parent is not fetched.
func (c *Client) GetCategory(ctx context.Context, id int64) (ProductCategory, error) {
	return fetchOne(ctx, c, request{method: http.MethodGet, path: categoryPath(id)}, "category", decodeProductCategory)
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (ProductCategory, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPost,
		path:   categoriesPath,
		body:   bodyOf(in.ToValue()),
	}, "category", decodeProductCategory)
}

// UpdateCategory sends the set fields of in and returns the updated category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (ProductCategory, error) {
	return fetchOne(ctx, c, request{
		method: http.MethodPut,
		path:   categoryPath(id),
		body:   bodyOf(in.ToValue()),
	}, "category", decodeProductCategory)
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.exec(ctx, request{method: http.MethodDelete, path: categoryPath(id)})
}
