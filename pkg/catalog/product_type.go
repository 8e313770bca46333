package catalog

// ProductType is a shared classification referenced by products.
type ProductType struct {
	ID        string
	Name      string
	CreatedAt *string
	UpdatedAt *string
}

// ProductTypeFromValue builds a ProductType from its wire representation.
func ProductTypeFromValue(v Value) (ProductType, error) {
	return decodeProductType(v, "product_type")
}

func decodeProductType(v Value, path string) (ProductType, error) {
	r := newFieldReader(v, path)

	productType := ProductType{
		ID:        r.requiredString("id"),
		Name:      r.requiredString("name"),
		CreatedAt: r.optionalString("created_at"),
		UpdatedAt: r.optionalString("updated_at"),
	}

	if err := r.Err(); err != nil {
		return ProductType{}, err
	}

	return productType, nil
}

// ToValue returns the wire representation of t.
func (t ProductType) ToValue() Value {
	return ObjectValue(map[string]Value{
		"id":         StringValue(t.ID),
		"name":       StringValue(t.Name),
		"created_at": optionalStringValue(t.CreatedAt),
		"updated_at": optionalStringValue(t.UpdatedAt),
	})
}

// MarshalJSON implements json.Marshaler using the wire representation.
func (t ProductType) MarshalJSON() ([]byte, error) {
	return t.ToValue().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler using the wire representation.
func (t *ProductType) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, t, ProductTypeFromValue)
}
