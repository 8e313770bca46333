package domain

import (
	"regexp"
	"strings"
	"time"
)

// Entity names used in errors and logs.
const (
	EntityProduct     = "product"
	EntityProductType = "product type"
	EntityVariant     = "variant"
	EntityImage       = "image"
	EntityCategory    = "category"
)

// ProductType groups products, e.g. "Apparel".
type ProductType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a sellable item. Images and Variants are owned by the product
// and are removed with it.
type Product struct {
	ID            string
	Name          string
	Slug          string
	Description   *string
	Price         *float64
	IsActive      bool
	AvailableAt   *time.Time
	ProductTypeID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFuture reports whether the product becomes available after now.
func (p Product) IsFuture(now time.Time) bool {
	return p.AvailableAt != nil && p.AvailableAt.After(now)
}

// Variant is a stock-keeping unit of a product.
type Variant struct {
	ID         string
	ProductID  string
	SKU        string
	Stock      int64
	Attributes map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Image is a picture attached to a product, shown in ascending Order.
type Image struct {
	ID        string
	ProductID string
	Name      string
	Path      string
	Order     int64
}

// Category is a node of the category tree. Ids are integers.
type Category struct {
	ID              int64
	Name            string
	Slug            string
	ParentID        *int64
	Description     *string
	Image           *string
	MetaTitle       *string
	MetaDescription *string
	Position        *int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductDetails is a product with the records it owns or references.
type ProductDetails struct {
	Product
	ProductType *ProductType
	Images      []Image
	Variants    []Variant
}

// slugSeparators matches runs of characters not allowed in a slug.
var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from s: lowercase ASCII letters and digits
// separated by single hyphens.
func Slugify(s string) string {
	return strings.Trim(slugSeparators.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
