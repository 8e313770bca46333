package domain

import "time"

// Commands carry caller-supplied changes. A nil field is left unchanged on
// update and takes its default on create.

// ProductChanges describes a product create or update.
type ProductChanges struct {
	Name          *string
	Slug          *string
	Description   *string
	Price         *float64
	IsActive      *bool
	AvailableAt   *time.Time
	ProductTypeID *string
}

// ProductTypeChanges describes a product type create or update.
type ProductTypeChanges struct {
	Name *string
}

// VariantChanges describes a variant create or update. Attributes replace
// the stored map when non-nil.
type VariantChanges struct {
	SKU        *string
	Stock      *int64
	Attributes map[string]any
}

// ImageChanges describes a new image.
type ImageChanges struct {
	Name  *string
	Path  *string
	Order *int64
}

// CategoryChanges describes a category create or update.
type CategoryChanges struct {
	Name            *string
	Slug            *string
	ParentID        *int64
	Description     *string
	Image           *string
	MetaTitle       *string
	MetaDescription *string
	Position        *int64
	IsActive        *bool
}

// ProductFilter narrows ListProducts.
type ProductFilter struct {
	// Active keeps only products whose IsActive equals *Active.
	Active *bool
}
