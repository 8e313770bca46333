package catalog

// ProductVariant is a purchasable variant of a product, identified by its SKU.
// Attributes is never nil after decoding.
type ProductVariant struct {
	ID         string
	SKU        string
	Stock      int64
	Attributes map[string]Value
	CreatedAt  *string
	UpdatedAt  *string
}

// ProductVariantFromValue builds a ProductVariant from its wire representation.
func ProductVariantFromValue(v Value) (ProductVariant, error) {
	return decodeProductVariant(v, "variant")
}

func decodeProductVariant(v Value, path string) (ProductVariant, error) {
	r := newFieldReader(v, path)

	variant := ProductVariant{
		ID:         r.requiredString("id"),
		SKU:        r.requiredString("sku"),
		Stock:      r.intOr("stock", 0),
		Attributes: r.attributes("attributes"),
		CreatedAt:  r.optionalString("created_at"),
		UpdatedAt:  r.optionalString("updated_at"),
	}

	if variant.Stock < 0 {
		r.fail("stock", "stock must not be negative, got %d", variant.Stock)
	}

	if err := r.Err(); err != nil {
		return ProductVariant{}, err
	}

	return variant, nil
}

// ToValue returns the wire representation of variant.
func (variant ProductVariant) ToValue() Value {
	attributes := make(map[string]Value, len(variant.Attributes))
	for key, value := range variant.Attributes {
		attributes[key] = value
	}

	return ObjectValue(map[string]Value{
		"id":         StringValue(variant.ID),
		"sku":        StringValue(variant.SKU),
		"stock":      IntValue(variant.Stock),
		"attributes": ObjectValue(attributes),
		"created_at": optionalStringValue(variant.CreatedAt),
		"updated_at": optionalStringValue(variant.UpdatedAt),
	})
}

// MarshalJSON implements json.Marshaler using the wire representation.
func (variant ProductVariant) MarshalJSON() ([]byte, error) {
	return variant.ToValue().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler using the wire representation.
func (variant *ProductVariant) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, variant, ProductVariantFromValue)
}

// attributes reads a free-form attribute map. The API encodes an empty map
// as an empty array, so that form is accepted too.
func (r *fieldReader) attributes(key string) map[string]Value {
	v, ok := r.lookup(key)
	if !ok {
		return map[string]Value{}
	}

	if fields, ok := v.AsObject(); ok {
		out := make(map[string]Value, len(fields))
		for name, field := range fields {
			out[name] = field
		}
		return out
	}

	if v.Kind() == ArrayKind && v.Len() == 0 {
		return map[string]Value{}
	}

	r.fail(key, "expected object, got %s", v.Kind())

	return map[string]Value{}
}

// unmarshalInto parses data and stores the decoded value in dst.
func unmarshalInto[T any](data []byte, dst *T, decode func(Value) (T, error)) error {
	v, err := ParseValue(data)
	if err != nil {
		return err
	}

	decoded, err := decode(v)
	if err != nil {
		return err
	}

	*dst = decoded

	return nil
}
