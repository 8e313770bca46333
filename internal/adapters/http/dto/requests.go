package dto

import (
	"github.com/lumexa/product-sdk/internal/domain"
)

// Requests use pointer fields so an absent field can be told apart from a
// zero value. Create requests require their key fields; update requests
// validate only what is present.

// ProductListQuery filters GET /api/products.
type ProductListQuery struct {
	IsActive *string `form:"is_active" json:"is_active" validate:"omitempty,oneof=0 1 true false"`
}

// Filter converts the query into a store filter.
func (q ProductListQuery) Filter() domain.ProductFilter {
	if q.IsActive == nil {
		return domain.ProductFilter{}
	}

	active := *q.IsActive == "1" || *q.IsActive == "true"

	return domain.ProductFilter{Active: &active}
}

type productFields struct {
	Slug          *string  `json:"slug"            validate:"omitempty,max=255,slug"`
	Description   *string  `json:"description"     validate:"omitempty,max=65535"`
	Price         *float64 `json:"price"           validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
	AvailableAt   *string  `json:"available_at"    validate:"omitempty,timestamp"`
	ProductTypeID *string  `json:"product_type_id" validate:"omitempty,uuid"`
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name *string `json:"name" validate:"required,notempty,max=255"`
	productFields
}

// UpdateProductRequest is the body of PUT and PATCH /api/products/:id.
type UpdateProductRequest struct {
	Name *string `json:"name" validate:"omitempty,notempty,max=255"`
	productFields
}

// Changes converts the request to a domain command. The request must have
// passed validation.
func (r CreateProductRequest) Changes() domain.ProductChanges {
	return r.productFields.changes(r.Name)
}

// Changes converts the request to a domain command. The request must have
// passed validation.
func (r UpdateProductRequest) Changes() domain.ProductChanges {
	return r.productFields.changes(r.Name)
}

func (f productFields) changes(name *string) domain.ProductChanges {
	c := domain.ProductChanges{
		Name:          name,
		Slug:          f.Slug,
		Description:   f.Description,
		Price:         f.Price,
		IsActive:      f.IsActive,
		ProductTypeID: f.ProductTypeID,
	}

	if f.AvailableAt != nil {
		if t, err := ParseTimestamp(*f.AvailableAt); err == nil {
			c.AvailableAt = &t
		}
	}

	return c
}

// CreateProductTypeRequest is the body of POST /api/product-types.
type CreateProductTypeRequest struct {
	Name *string `json:"name" validate:"required,notempty,max=255"`
}

// UpdateProductTypeRequest is the body of PUT and PATCH /api/product-types/:id.
type UpdateProductTypeRequest struct {
	Name *string `json:"name" validate:"omitempty,notempty,max=255"`
}

func (r CreateProductTypeRequest) Changes() domain.ProductTypeChanges {
	return domain.ProductTypeChanges{Name: r.Name}
}

func (r UpdateProductTypeRequest) Changes() domain.ProductTypeChanges {
	return domain.ProductTypeChanges{Name: r.Name}
}

type variantFields struct {
	Stock      *int64         `json:"stock"      validate:"omitempty,gte=0"`
	Attributes map[string]any `json:"attributes"`
}

// CreateVariantRequest is the body of POST /api/products/:id/variants.
type CreateVariantRequest struct {
	SKU *string `json:"sku" validate:"required,notempty,max=255"`
	variantFields
}

// UpdateVariantRequest is the body of PUT and PATCH on a variant.
type UpdateVariantRequest struct {
	SKU *string `json:"sku" validate:"omitempty,notempty,max=255"`
	variantFields
}

func (r CreateVariantRequest) Changes() domain.VariantChanges {
	return domain.VariantChanges{SKU: r.SKU, Stock: r.Stock, Attributes: r.Attributes}
}

func (r UpdateVariantRequest) Changes() domain.VariantChanges {
	return domain.VariantChanges{SKU: r.SKU, Stock: r.Stock, Attributes: r.Attributes}
}

// CreateImageRequest is the body of POST /api/products/:id/images.
type CreateImageRequest struct {
	Name  *string `json:"name"  validate:"required,notempty,max=255"`
	Path  *string `json:"path"  validate:"required,notempty,max=1024"`
	Order *int64  `json:"order" validate:"omitempty,gte=0"`
}

func (r CreateImageRequest) Changes() domain.ImageChanges {
	return domain.ImageChanges{Name: r.Name, Path: r.Path, Order: r.Order}
}

type categoryFields struct {
	Slug            *string `json:"slug"             validate:"omitempty,max=255,slug"`
	ParentID        *int64  `json:"parent_id"        validate:"omitempty,gt=0"`
	Description     *string `json:"description"      validate:"omitempty,max=65535"`
	Image           *string `json:"image"            validate:"omitempty,max=1024"`
	MetaTitle       *string `json:"meta_title"       validate:"omitempty,max=255"`
	MetaDescription *string `json:"meta_description" validate:"omitempty,max=1024"`
	Position        *int64  `json:"position"         validate:"omitempty,gte=0"`
	IsActive        *bool   `json:"is_active"`
}

// CreateCategoryRequest is the body of POST /api/product-categories.
type CreateCategoryRequest struct {
	Name *string `json:"name" validate:"required,notempty,max=255"`
	categoryFields
}

// UpdateCategoryRequest is the body of PUT and PATCH on a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,notempty,max=255"`
	categoryFields
}

func (r CreateCategoryRequest) Changes() domain.CategoryChanges {
	return r.categoryFields.changes(r.Name)
}

func (r UpdateCategoryRequest) Changes() domain.CategoryChanges {
	return r.categoryFields.changes(r.Name)
}

func (f categoryFields) changes(name *string) domain.CategoryChanges {
	return domain.CategoryChanges{
		Name:            name,
		Slug:            f.Slug,
		ParentID:        f.ParentID,
		Description:     f.Description,
		Image:           f.Image,
		MetaTitle:       f.MetaTitle,
		MetaDescription: f.MetaDescription,
		Position:        f.Position,
		IsActive:        f.IsActive,
	}
}
