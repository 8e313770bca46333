package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumexa/product-sdk/internal/domain"
)

type sequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++

	return fmt.Sprintf("id-%d", g.next)
}

func newTestStore() *Store {
	return NewStore(WithIDGenerator(&sequentialIDs{}))
}

func mustCreateProduct(t *testing.T, s *Store, slug string) domain.Product {
	t.Helper()

	p, err := s.CreateProduct(context.Background(), domain.Product{Name: slug, Slug: slug, IsActive: true})
	require.NoError(t, err)

	return p
}

func TestStore_ProductLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	created := mustCreateProduct(t, s, "shirt")
	assert.Equal(t, "id-1", created.ID)

	got, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	bySlug, err := s.GetProductBySlug(ctx, "shirt")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	created.Name = "Blue shirt"
	updated, err := s.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Blue shirt", updated.Name)

	require.NoError(t, s.DeleteProduct(ctx, created.ID))

	_, err = s.GetProduct(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestStore_GetProductBySlugNotFound(t *testing.T) {
	_, err := newTestStore().GetProductBySlug(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), `slug "missing"`)
}

func TestStore_ListProductsKeepsOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	mustCreateProduct(t, s, "c")
	mustCreateProduct(t, s, "a")
	_, err := s.CreateProduct(ctx, domain.Product{Name: "b", Slug: "b"})
	require.NoError(t, err)

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Slug, all[1].Slug, all[2].Slug})

	active := true
	onlyActive, err := s.ListProducts(ctx, domain.ProductFilter{Active: &active})
	require.NoError(t, err)
	assert.Len(t, onlyActive, 2)

	inactive := false
	onlyInactive, err := s.ListProducts(ctx, domain.ProductFilter{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, onlyInactive, 1)
	assert.Equal(t, "b", onlyInactive[0].Slug)
}

func TestStore_ListEmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	products, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.NotNil(t, products)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, categories)
}

func TestStore_ProductSlugConflict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	first := mustCreateProduct(t, s, "shirt")
	second := mustCreateProduct(t, s, "hat")

	_, err := s.CreateProduct(ctx, domain.Product{Name: "Shirt", Slug: "shirt"})
	assert.True(t, domain.IsConflict(err))

	second.Slug = first.Slug
	_, err = s.UpdateProduct(ctx, second)
	assert.True(t, domain.IsConflict(err))

	// Keeping its own slug is not a conflict.
	_, err = s.UpdateProduct(ctx, first)
	assert.NoError(t, err)
}

func TestStore_DeleteProductCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	doomed := mustCreateProduct(t, s, "doomed")
	kept := mustCreateProduct(t, s, "kept")

	_, err := s.CreateVariant(ctx, domain.Variant{ProductID: doomed.ID, SKU: "D-1"})
	require.NoError(t, err)
	_, err = s.CreateImage(ctx, domain.Image{ProductID: doomed.ID, Name: "front"})
	require.NoError(t, err)
	keptVariant, err := s.CreateVariant(ctx, domain.Variant{ProductID: kept.ID, SKU: "K-1"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, doomed.ID))

	assert.Empty(t, s.variants.list(func(v domain.Variant) bool { return v.ProductID == doomed.ID }))
	assert.Empty(t, s.images.list(nil))

	variants, err := s.ListVariants(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Variant{keptVariant}, variants)

	// The SKU of a deleted variant can be reused.
	_, err = s.CreateVariant(ctx, domain.Variant{ProductID: kept.ID, SKU: "D-1"})
	assert.NoError(t, err)
}

func TestStore_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	product := mustCreateProduct(t, s, "p")

	tests := []struct {
		name string
		fn   func() error
	}{
		{"product", func() error { return s.DeleteProduct(ctx, "nope") }},
		{"product type", func() error { return s.DeleteProductType(ctx, "nope") }},
		{"variant", func() error { return s.DeleteVariant(ctx, product.ID, "nope") }},
		{"variant of missing product", func() error { return s.DeleteVariant(ctx, "nope", "nope") }},
		{"image", func() error { return s.DeleteImage(ctx, product.ID, "nope") }},
		{"category", func() error { return s.DeleteCategory(ctx, 42) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, domain.IsNotFound(tt.fn()))
		})
	}
}

func TestStore_ProductTypeInUse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	pt, err := s.CreateProductType(ctx, domain.ProductType{Name: "Apparel"})
	require.NoError(t, err)

	p, err := s.CreateProduct(ctx, domain.Product{Name: "Shirt", Slug: "shirt", ProductTypeID: &pt.ID})
	require.NoError(t, err)

	err = s.DeleteProductType(ctx, pt.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	require.NoError(t, s.DeleteProductType(ctx, pt.ID))

	types, err := s.ListProductTypes(ctx)
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestStore_VariantScopedToProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	a := mustCreateProduct(t, s, "a")
	b := mustCreateProduct(t, s, "b")

	v, err := s.CreateVariant(ctx, domain.Variant{
		ProductID:  a.ID,
		SKU:        "A-RED",
		Stock:      3,
		Attributes: map[string]any{"color": "red"},
	})
	require.NoError(t, err)

	got, err := s.GetVariant(ctx, a.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "red", got.Attributes["color"])

	_, err = s.GetVariant(ctx, b.ID, v.ID)
	assert.True(t, domain.IsNotFound(err))

	v.ProductID = b.ID
	_, err = s.UpdateVariant(ctx, v)
	assert.True(t, domain.IsNotFound(err))

	_, err = s.CreateVariant(ctx, domain.Variant{ProductID: "missing", SKU: "X"})
	assert.True(t, domain.IsNotFound(err))

	_, err = s.ListVariants(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestStore_VariantSKUConflict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	a := mustCreateProduct(t, s, "a")
	b := mustCreateProduct(t, s, "b")

	_, err := s.CreateVariant(ctx, domain.Variant{ProductID: a.ID, SKU: "SKU-1"})
	require.NoError(t, err)

	_, err = s.CreateVariant(ctx, domain.Variant{ProductID: b.ID, SKU: "SKU-1"})
	assert.True(t, domain.IsConflict(err))

	other, err := s.CreateVariant(ctx, domain.Variant{ProductID: b.ID, SKU: "SKU-2"})
	require.NoError(t, err)

	other.SKU = "SKU-1"
	_, err = s.UpdateVariant(ctx, other)
	assert.True(t, domain.IsConflict(err))
}

func TestStore_VariantAttributesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	p := mustCreateProduct(t, s, "p")

	attrs := map[string]any{"size": "M"}
	v, err := s.CreateVariant(ctx, domain.Variant{ProductID: p.ID, SKU: "S", Attributes: attrs})
	require.NoError(t, err)

	attrs["size"] = "XL"

	got, err := s.GetVariant(ctx, p.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "M", got.Attributes["size"])
}

func TestStore_ImagesOrdered(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	p := mustCreateProduct(t, s, "p")

	for _, img := range []domain.Image{
		{Name: "third", Order: 3},
		{Name: "first", Order: 1},
		{Name: "second-a", Order: 2},
		{Name: "second-b", Order: 2},
	} {
		img.ProductID = p.ID
		_, err := s.CreateImage(ctx, img)
		require.NoError(t, err)
	}

	images, err := s.ListImages(ctx, p.ID)
	require.NoError(t, err)

	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Name)
	}
	assert.Equal(t, []string{"first", "second-a", "second-b", "third"}, names)

	require.NoError(t, s.DeleteImage(ctx, p.ID, images[0].ID))

	images, err = s.ListImages(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, images, 3)
}

func TestStore_ImageOfOtherProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	a := mustCreateProduct(t, s, "a")
	b := mustCreateProduct(t, s, "b")

	img, err := s.CreateImage(ctx, domain.Image{ProductID: a.ID, Name: "front"})
	require.NoError(t, err)

	assert.True(t, domain.IsNotFound(s.DeleteImage(ctx, b.ID, img.ID)))
}

func TestStore_Categories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	root, err := s.CreateCategory(ctx, domain.Category{Name: "Clothing", Slug: "clothing", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), root.ID)

	child, err := s.CreateCategory(ctx, domain.Category{Name: "Shirts", Slug: "shirts", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), child.ID)

	_, err = s.CreateCategory(ctx, domain.Category{Name: "Dup", Slug: "shirts"})
	assert.True(t, domain.IsConflict(err))

	child.Name = "T-Shirts"
	updated, err := s.UpdateCategory(ctx, child)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirts", updated.Name)

	require.NoError(t, s.DeleteCategory(ctx, root.ID))

	orphan, err := s.GetCategory(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)

	// Ids are never reused.
	next, err := s.CreateCategory(ctx, domain.Category{Name: "Hats", Slug: "hats"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), next.ID)

	_, err = s.GetCategory(ctx, root.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"1"`)
}

func TestStore_ClosedAndCanceled(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Check(context.Background()))
	assert.Equal(t, "catalog-store", s.Name())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, s.Close())

	err = s.Check(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	_, err = s.CreateProduct(context.Background(), domain.Product{Name: "x", Slug: "x"})
	assert.True(t, domain.IsUnavailable(err))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			_, err := s.CreateProduct(ctx, domain.Product{Name: "p", Slug: fmt.Sprintf("p-%d", i)})
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	products, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 50)
}
