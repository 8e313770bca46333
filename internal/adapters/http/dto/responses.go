package dto

import (
	"time"

	"github.com/lumexa/product-sdk/internal/domain"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

// Responses are rendered through the SDK value objects so the sandbox emits
// exactly the shapes the SDK decodes.

// Data wraps a payload in the {"data": ...} envelope.
func Data(v catalog.Value) catalog.Value {
	return catalog.ObjectValue(map[string]catalog.Value{"data": v})
}

// List converts items with encode and returns them as an array.
func List[T any](items []T, encode func(T) catalog.Value) catalog.Value {
	values := make([]catalog.Value, 0, len(items))
	for _, item := range items {
		values = append(values, encode(item))
	}

	return catalog.ArrayValue(values...)
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}

	s := t.UTC().Format(time.RFC3339)

	return &s
}

// ProductType renders a product type.
func ProductType(pt domain.ProductType) catalog.Value {
	return toProductType(pt).ToValue()
}

func toProductType(pt domain.ProductType) catalog.ProductType {
	return catalog.ProductType{
		ID:        pt.ID,
		Name:      pt.Name,
		CreatedAt: timestamp(pt.CreatedAt),
		UpdatedAt: timestamp(pt.UpdatedAt),
	}
}

// Variant renders a variant.
func Variant(v domain.Variant) catalog.Value {
	return toVariant(v).ToValue()
}

func toVariant(v domain.Variant) catalog.ProductVariant {
	attributes := make(map[string]catalog.Value, len(v.Attributes))
	for key, value := range v.Attributes {
		converted, err := catalog.FromAny(value)
		if err != nil {
			converted = catalog.NullValue()
		}
		attributes[key] = converted
	}

	return catalog.ProductVariant{
		ID:         v.ID,
		SKU:        v.SKU,
		Stock:      v.Stock,
		Attributes: attributes,
		CreatedAt:  timestamp(v.CreatedAt),
		UpdatedAt:  timestamp(v.UpdatedAt),
	}
}

// Image renders an image.
func Image(img domain.Image) catalog.Value {
	return toImage(img).ToValue()
}

func toImage(img domain.Image) catalog.ProductImage {
	return catalog.ProductImage{
		ID:    img.ID,
		Name:  img.Name,
		Path:  img.Path,
		Order: img.Order,
	}
}

// Product renders a product with its type, images and variants.
func Product(d domain.ProductDetails) catalog.Value {
	p := catalog.Product{
		ID:            d.ID,
		Name:          d.Name,
		Slug:          &d.Slug,
		Description:   d.Description,
		Price:         d.Price,
		IsActive:      d.IsActive,
		ProductTypeID: d.ProductTypeID,
		Images:        make([]catalog.ProductImage, 0, len(d.Images)),
		Variants:      make([]catalog.ProductVariant, 0, len(d.Variants)),
		CreatedAt:     timestamp(d.CreatedAt),
		UpdatedAt:     timestamp(d.UpdatedAt),
	}

	if d.AvailableAt != nil {
		p.AvailableAt = timestamp(*d.AvailableAt)
	}

	if d.ProductType != nil {
		pt := toProductType(*d.ProductType)
		p.ProductType = &pt
	}

	for _, img := range d.Images {
		p.Images = append(p.Images, toImage(img))
	}

	for _, v := range d.Variants {
		p.Variants = append(p.Variants, toVariant(v))
	}

	return p.ToValue()
}

// Category renders a category. Category timestamps use the SDK date layout.
func Category(c domain.Category) catalog.Value {
	return catalog.ProductCategory{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		ParentID:        c.ParentID,
		Description:     c.Description,
		Image:           c.Image,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		Position:        c.Position,
		IsActive:        c.IsActive,
		CreatedAt:       timePtr(c.CreatedAt),
		UpdatedAt:       timePtr(c.UpdatedAt),
	}.ToValue()
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
