package catalog

// ProductImage is an image attached to a product. Order is the position of
// the image within the product gallery.
type ProductImage struct {
	ID    string
	Name  string
	Path  string
	Order int64
}

// ProductImageFromValue builds a ProductImage from its wire representation.
func ProductImageFromValue(v Value) (ProductImage, error) {
	return decodeProductImage(v, "image")
}

func decodeProductImage(v Value, path string) (ProductImage, error) {
	r := newFieldReader(v, path)

	image := ProductImage{
		ID:    r.requiredString("id"),
		Name:  r.requiredString("name"),
		Path:  r.requiredString("path"),
		Order: r.intOr("order", 0),
	}

	if err := r.Err(); err != nil {
		return ProductImage{}, err
	}

	return image, nil
}

// ToValue returns the wire representation of image.
func (image ProductImage) ToValue() Value {
	return ObjectValue(map[string]Value{
		"id":    StringValue(image.ID),
		"name":  StringValue(image.Name),
		"path":  StringValue(image.Path),
		"order": IntValue(image.Order),
	})
}

// MarshalJSON implements json.Marshaler using the wire representation.
func (image ProductImage) MarshalJSON() ([]byte, error) {
	return image.ToValue().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler using the wire representation.
func (image *ProductImage) UnmarshalJSON(data []byte) error {
	return unmarshalInto(data, image, ProductImageFromValue)
}
