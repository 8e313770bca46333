// Package memory provides an in-memory implementation of ports.CatalogStore
// for the sandbox server and tests.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/lumexa/product-sdk/internal/domain"
	"github.com/lumexa/product-sdk/internal/ports"
)

const storeName = "catalog-store"

// Compile-time interface checks.
var (
	_ ports.CatalogStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
	_ ports.IDGenerator   = UUIDGenerator{}
)

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Store holds the whole catalog in memory. All tables share one lock so
// cascades and reference checks see a consistent snapshot.
type Store struct {
	mu     sync.RWMutex
	closed bool
	ids    ports.IDGenerator

	products     *table[string, domain.Product]
	productTypes *table[string, domain.ProductType]
	variants     *table[string, domain.Variant]
	images       *table[string, domain.Image]
	categories   *table[int64, domain.Category]

	lastCategoryID int64
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for string ids.
func WithIDGenerator(ids ports.IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:          UUIDGenerator{},
		products:     newTable[string, domain.Product](),
		productTypes: newTable[string, domain.ProductType](),
		variants:     newTable[string, domain.Variant](),
		images:       newTable[string, domain.Image](),
		categories:   newTable[int64, domain.Category](),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return storeName
}

// Check implements ports.HealthChecker. A closed store is unavailable.
func (s *Store) Check(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ready(ctx)
}

// Close marks the store unavailable. Subsequent calls fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// ready must be called with the lock held.
func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.closed {
		return domain.NewUnavailableError(storeName, "store is closed")
	}

	return nil
}

// --- products ---

// ListProducts returns products in insertion order.
func (s *Store) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	return s.products.list(func(p domain.Product) bool {
		return filter.Active == nil || p.IsActive == *filter.Active
	}), nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return domain.Product{}, err
	}

	return s.product(id)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return domain.Product{}, err
	}

	p, ok := s.products.find(func(p domain.Product) bool { return p.Slug == slug })
	if !ok {
		return domain.Product{}, domain.NewNotFoundByError(domain.EntityProduct, "slug", slug)
	}

	return p, nil
}

// CreateProduct assigns an id when product.ID is empty.
func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Product{}, err
	}

	if product.ID == "" {
		product.ID = s.ids.NewID()
	}

	if _, ok := s.products.get(product.ID); ok {
		return domain.Product{}, domain.NewConflictErrorWithDetails(domain.EntityProduct, "id already exists", product.ID)
	}

	if err := s.checkProductSlug(product); err != nil {
		return domain.Product{}, err
	}

	s.products.put(product.ID, product)

	return product, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Product{}, err
	}

	if _, err := s.product(product.ID); err != nil {
		return domain.Product{}, err
	}

	if err := s.checkProductSlug(product); err != nil {
		return domain.Product{}, err
	}

	s.products.put(product.ID, product)

	return product, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return err
	}

	if !s.products.remove(id) {
		return domain.NewNotFoundError(domain.EntityProduct, id)
	}

	s.variants.removeWhere(func(v domain.Variant) bool { return v.ProductID == id })
	s.images.removeWhere(func(i domain.Image) bool { return i.ProductID == id })

	return nil
}

func (s *Store) product(id string) (domain.Product, error) {
	p, ok := s.products.get(id)
	if !ok {
		return domain.Product{}, domain.NewNotFoundError(domain.EntityProduct, id)
	}

	return p, nil
}

func (s *Store) checkProductSlug(product domain.Product) error {
	_, taken := s.products.find(func(p domain.Product) bool {
		return p.Slug == product.Slug && p.ID != product.ID
	})
	if taken {
		return domain.NewConflictErrorWithDetails(domain.EntityProduct, "slug already taken", product.Slug)
	}

	return nil
}

// --- product types ---

func (s *Store) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	return s.productTypes.list(nil), nil
}

func (s *Store) GetProductType(ctx context.Context, id string) (domain.ProductType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return domain.ProductType{}, err
	}

	return s.productType(id)
}

func (s *Store) CreateProductType(ctx context.Context, productType domain.ProductType) (domain.ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.ProductType{}, err
	}

	if productType.ID == "" {
		productType.ID = s.ids.NewID()
	}

	if _, ok := s.productTypes.get(productType.ID); ok {
		return domain.ProductType{}, domain.NewConflictErrorWithDetails(domain.EntityProductType, "id already exists", productType.ID)
	}

	s.productTypes.put(productType.ID, productType)

	return productType, nil
}

func (s *Store) UpdateProductType(ctx context.Context, productType domain.ProductType) (domain.ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.ProductType{}, err
	}

	if _, err := s.productType(productType.ID); err != nil {
		return domain.ProductType{}, err
	}

	s.productTypes.put(productType.ID, productType)

	return productType, nil
}

func (s *Store) DeleteProductType(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return err
	}

	if _, err := s.productType(id); err != nil {
		return err
	}

	_, used := s.products.find(func(p domain.Product) bool {
		return p.ProductTypeID != nil && *p.ProductTypeID == id
	})
	if used {
		return domain.NewConflictErrorWithDetails(domain.EntityProductType, "still referenced by products", id)
	}

	s.productTypes.remove(id)

	return nil
}

func (s *Store) productType(id string) (domain.ProductType, error) {
	t, ok := s.productTypes.get(id)
	if !ok {
		return domain.ProductType{}, domain.NewNotFoundError(domain.EntityProductType, id)
	}

	return t, nil
}

// --- variants ---

func (s *Store) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	if _, err := s.product(productID); err != nil {
		return nil, err
	}

	return s.variants.list(func(v domain.Variant) bool { return v.ProductID == productID }), nil
}

func (s *Store) GetVariant(ctx context.Context, productID, variantID string) (domain.Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return domain.Variant{}, err
	}

	return s.variant(productID, variantID)
}

func (s *Store) CreateVariant(ctx context.Context, variant domain.Variant) (domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Variant{}, err
	}

	if _, err := s.product(variant.ProductID); err != nil {
		return domain.Variant{}, err
	}

	if variant.ID == "" {
		variant.ID = s.ids.NewID()
	}

	if _, ok := s.variants.get(variant.ID); ok {
		return domain.Variant{}, domain.NewConflictErrorWithDetails(domain.EntityVariant, "id already exists", variant.ID)
	}

	if err := s.checkSKU(variant); err != nil {
		return domain.Variant{}, err
	}

	variant.Attributes = maps.Clone(variant.Attributes)
	s.variants.put(variant.ID, variant)

	return variant, nil
}

func (s *Store) UpdateVariant(ctx context.Context, variant domain.Variant) (domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Variant{}, err
	}

	if _, err := s.variant(variant.ProductID, variant.ID); err != nil {
		return domain.Variant{}, err
	}

	if err := s.checkSKU(variant); err != nil {
		return domain.Variant{}, err
	}

	variant.Attributes = maps.Clone(variant.Attributes)
	s.variants.put(variant.ID, variant)

	return variant, nil
}

func (s *Store) DeleteVariant(ctx context.Context, productID, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return err
	}

	if _, err := s.variant(productID, variantID); err != nil {
		return err
	}

	s.variants.remove(variantID)

	return nil
}

// variant looks a variant up under its owning product. A variant of another
// product is reported as not found.
func (s *Store) variant(productID, variantID string) (domain.Variant, error) {
	if _, err := s.product(productID); err != nil {
		return domain.Variant{}, err
	}

	v, ok := s.variants.get(variantID)
	if !ok || v.ProductID != productID {
		return domain.Variant{}, domain.NewNotFoundError(domain.EntityVariant, variantID)
	}

	return v, nil
}

func (s *Store) checkSKU(variant domain.Variant) error {
	_, taken := s.variants.find(func(v domain.Variant) bool {
		return v.SKU == variant.SKU && v.ID != variant.ID
	})
	if taken {
		return domain.NewConflictErrorWithDetails(domain.EntityVariant, "sku already taken", variant.SKU)
	}

	return nil
}

// --- images ---

// ListImages returns a product's images by ascending Order. Ties keep
// insertion order.
func (s *Store) ListImages(ctx context.Context, productID string) ([]domain.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	if _, err := s.product(productID); err != nil {
		return nil, err
	}

	images := s.images.list(func(i domain.Image) bool { return i.ProductID == productID })
	slices.SortStableFunc(images, func(a, b domain.Image) int { return cmp.Compare(a.Order, b.Order) })

	return images, nil
}

func (s *Store) CreateImage(ctx context.Context, image domain.Image) (domain.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Image{}, err
	}

	if _, err := s.product(image.ProductID); err != nil {
		return domain.Image{}, err
	}

	if image.ID == "" {
		image.ID = s.ids.NewID()
	}

	if _, ok := s.images.get(image.ID); ok {
		return domain.Image{}, domain.NewConflictErrorWithDetails(domain.EntityImage, "id already exists", image.ID)
	}

	s.images.put(image.ID, image)

	return image, nil
}

func (s *Store) DeleteImage(ctx context.Context, productID, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return err
	}

	if _, err := s.product(productID); err != nil {
		return err
	}

	img, ok := s.images.get(imageID)
	if !ok || img.ProductID != productID {
		return domain.NewNotFoundError(domain.EntityImage, imageID)
	}

	s.images.remove(imageID)

	return nil
}

// --- categories ---

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	return s.categories.list(nil), nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(ctx); err != nil {
		return domain.Category{}, err
	}

	return s.category(id)
}

// CreateCategory always assigns the next integer id.
func (s *Store) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Category{}, err
	}

	if err := s.checkCategorySlug(category); err != nil {
		return domain.Category{}, err
	}

	s.lastCategoryID++
	category.ID = s.lastCategoryID
	s.categories.put(category.ID, category)

	return category, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return domain.Category{}, err
	}

	if _, err := s.category(category.ID); err != nil {
		return domain.Category{}, err
	}

	if err := s.checkCategorySlug(category); err != nil {
		return domain.Category{}, err
	}

	s.categories.put(category.ID, category)

	return category, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return err
	}

	if !s.categories.remove(id) {
		return domain.NewNotFoundError(domain.EntityCategory, formatID(id))
	}

	for _, child := range s.categories.list(func(c domain.Category) bool {
		return c.ParentID != nil && *c.ParentID == id
	}) {
		child.ParentID = nil
		s.categories.put(child.ID, child)
	}

	return nil
}

func (s *Store) category(id int64) (domain.Category, error) {
	c, ok := s.categories.get(id)
	if !ok {
		return domain.Category{}, domain.NewNotFoundError(domain.EntityCategory, formatID(id))
	}

	return c, nil
}

func (s *Store) checkCategorySlug(category domain.Category) error {
	_, taken := s.categories.find(func(c domain.Category) bool {
		return c.Slug == category.Slug && c.ID != category.ID
	})
	if taken {
		return domain.NewConflictErrorWithDetails(domain.EntityCategory, "slug already taken", category.Slug)
	}

	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
