package catalog

// Product is a catalog product as returned by the API.
//
// Different API generations populate different subsets of fields; this
// type is their superset. Only ID and Name are required. Images and
// Variants are never nil after decoding; ProductType is nil when the
// response does not embed it.
type Product struct {
	ID            string
	Name          string
	Slug          *string
	Description   *string
	Price         *float64
	IsActive      bool
	AvailableAt   *string
	ProductTypeID *string
	ProductType   *ProductType
	Images        []ProductImage
	Variants      []ProductVariant
	CreatedAt     *string
	UpdatedAt     *string
}

// ProductFromValue builds a Product from its wire representation.
func ProductFromValue(v Value) (Product, error) {
	return decodeProduct(v, "product")
}

func decodeProduct(v Value, path string) (Product, error) {
	r := newFieldReader(v, path)

	p := Product{
		ID:            r.requiredString("id"),
		Name:          r.requiredString("name"),
		Slug:          r.optionalString("slug"),
		Description:   r.optionalString("description"),
		Price:         r.optionalFloat("price"),
		IsActive:      r.boolOr("is_active", true),
		AvailableAt:   r.optionalString("available_at"),
		ProductTypeID: r.optionalString("product_type_id"),
		CreatedAt:     r.optionalString("created_at"),
		UpdatedAt:     r.optionalString("updated_at"),
		Images:        []ProductImage{},
		Variants:      []ProductVariant{},
	}

	if raw, ok := r.object("product_type"); ok {
		productType, err := decodeProductType(raw, r.fieldPath("product_type"))
		r.nested(err)
		p.ProductType = &productType
	}

	if items, ok := r.array("images"); ok {
		images, err := decodeList(ArrayValue(items...), r.fieldPath("images"), decodeProductImage)
		r.nested(err)
		if images != nil {
			p.Images = images
		}
	}

	if items, ok := r.array("variants"); ok {
		variants, err := decodeList(ArrayValue(items...), r.fieldPath("variants"), decodeProductVariant)
		r.nested(err)
		if variants != nil {
			p.Variants = variants
		}
	}

	if err := r.Err(); err != nil {
		return Product{}, err
	}

	return p, nil
}

// ToValue returns the wire representation of p. Absent optional fields are
// emitted as explicit nulls and collections as arrays, never omitted.
func (p Product) ToValue() Value {
	productType := NullValue()
	if p.ProductType != nil {
		productType = p.ProductType.ToValue()
	}

	return ObjectValue(map[string]Value{
		"id":              StringValue(p.ID),
		"name":            StringValue(p.Name),
		"slug":            optionalStringValue(p.Slug),
		"description":     optionalStringValue(p.Description),
		"price":           optionalFloatValue(p.Price),
		"is_active":       BoolValue(p.IsActive),
		"available_at":    optionalStringValue(p.AvailableAt),
		"product_type_id": optionalStringValue(p.ProductTypeID),
		"product_type":    productType,
		"images":          encodeList(p.Images, ProductImage.ToValue),
		"variants":        encodeList(p.Variants, ProductVariant.ToValue),
		"created_at":      optionalStringValue(p.CreatedAt),
		"updated_at":      optionalStringValue(p.UpdatedAt),
	})
}

// MarshalJSON implements json.Marshaler using the wire representation.
func (p Product) MarshalJSON() ([]byte, error) {
	return p.ToValue().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler using the wire representation.
func (p *Product) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, p, ProductFromValue)
}
