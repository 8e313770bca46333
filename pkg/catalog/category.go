package catalog

import "time"

// ProductCategory is a node of the category tree. ParentID is a weak
// reference to another category; the parent is never fetched implicitly.
//
// Timestamps are typed. They serialize in UTC using DateTimeLayout, so
// sub-second precision and the original offset do not survive a round-trip.
type ProductCategory struct {
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
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
}

// ProductCategoryFromValue builds a ProductCategory from its wire representation.
func ProductCategoryFromValue(v Value) (ProductCategory, error) {
	return decodeProductCategory(v, "category")
}

func decodeProductCategory(v Value, path string) (ProductCategory, error) {
	r := newFieldReader(v, path)

	category := ProductCategory{
		ID:              r.requiredInt("id"),
		Name:            r.requiredString("name"),
		Slug:            r.requiredString("slug"),
		ParentID:        r.optionalInt("parent_id"),
		Description:     r.optionalString("description"),
		Image:           r.optionalString("image"),
		MetaTitle:       r.optionalString("meta_title"),
		MetaDescription: r.optionalString("meta_description"),
		Position:        r.optionalInt("position"),
		IsActive:        r.boolOr("is_active", true),
		CreatedAt:       r.optionalTime("created_at"),
		UpdatedAt:       r.optionalTime("updated_at"),
	}

	if err := r.Err(); err != nil {
		return ProductCategory{}, err
	}

	return category, nil
}

// ToValue returns the wire representation of c.
func (c ProductCategory) ToValue() Value {
	return ObjectValue(map[string]Value{
		"id":               IntValue(c.ID),
		"name":             StringValue(c.Name),
		"slug":             StringValue(c.Slug),
		"parent_id":        optionalIntValue(c.ParentID),
		"description":      optionalStringValue(c.Description),
		"image":            optionalStringValue(c.Image),
		"meta_title":       optionalStringValue(c.MetaTitle),
		"meta_description": optionalStringValue(c.MetaDescription),
		"position":         optionalIntValue(c.Position),
		"is_active":        BoolValue(c.IsActive),
		"created_at":       formatTimestamp(c.CreatedAt),
		"updated_at":       formatTimestamp(c.UpdatedAt),
	})
}

// MarshalJSON implements json.Marshaler using the wire representation.
func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return c.ToValue().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler using the wire representation.
func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, c, ProductCategoryFromValue)
}
