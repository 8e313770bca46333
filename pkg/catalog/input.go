package catalog

// Inputs are request payloads. Only non-nil fields are sent, so the same
// type serves full creates and partial updates.

// ProductInput is the payload for CreateProduct and UpdateProduct.
type ProductInput struct {
	Name          *string
	Slug          *string
	Description   *string
	Price         *float64
	IsActive      *bool
	AvailableAt   *string
	ProductTypeID *string
}

// ToValue returns the request body for in.
func (in ProductInput) ToValue() Value {
	fields := map[string]Value{}
	setString(fields, "name", in.Name)
	setString(fields, "slug", in.Slug)
	setString(fields, "description", in.Description)
	setFloat(fields, "price", in.Price)
	setBool(fields, "is_active", in.IsActive)
	setString(fields, "available_at", in.AvailableAt)
	setString(fields, "product_type_id", in.ProductTypeID)

	return ObjectValue(fields)
}

// VariantInput is the payload for CreateVariant and UpdateVariant.
// A nil Attributes map is not sent; an empty one is sent as {}.
type VariantInput struct {
	SKU        *string
	Stock      *int64
	Attributes map[string]Value
}

// ToValue returns the request body for in.
func (in VariantInput) ToValue() Value {
	fields := map[string]Value{}
	setString(fields, "sku", in.SKU)
	setInt(fields, "stock", in.Stock)

	if in.Attributes != nil {
		attributes := make(map[string]Value, len(in.Attributes))
		for key, value := range in.Attributes {
			attributes[key] = value
		}
		fields["attributes"] = ObjectValue(attributes)
	}

	return ObjectValue(fields)
}

// ImageInput is the payload for CreateImage.
type ImageInput struct {
	Name  *string
	Path  *string
	Order *int64
}

// ToValue returns the request body for in.
func (in ImageInput) ToValue() Value {
	fields := map[string]Value{}
	setString(fields, "name", in.Name)
	setString(fields, "path", in.Path)
	setInt(fields, "order", in.Order)

	return ObjectValue(fields)
}

// ProductTypeInput is the payload for CreateProductType and UpdateProductType.
type ProductTypeInput struct {
	Name *string
}

// ToValue returns the request body for in.
func (in ProductTypeInput) ToValue() Value {
	fields := map[string]Value{}
	setString(fields, "name", in.Name)

	return ObjectValue(fields)
}

// CategoryInput is the payload for CreateCategory and UpdateCategory.
type CategoryInput struct {
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

// ToValue returns the request body for in.
func (in CategoryInput) ToValue() Value {
	fields := map[string]Value{}
	setString(fields, "name", in.Name)
	setString(fields, "slug", in.Slug)
	setInt(fields, "parent_id", in.ParentID)
	setString(fields, "description", in.Description)
	setString(fields, "image", in.Image)
	setString(fields, "meta_title", in.MetaTitle)
	setString(fields, "meta_description", in.MetaDescription)
	setInt(fields, "position", in.Position)
	setBool(fields, "is_active", in.IsActive)

	return ObjectValue(fields)
}

func setString(fields map[string]Value, key string, v *string) {
	if v != nil {
		fields[key] = StringValue(*v)
	}
}

func setFloat(fields map[string]Value, key string, v *float64) {
	if v != nil {
		fields[key] = FloatValue(*v)
	}
}

func setInt(fields map[string]Value, key string, v *int64) {
	if v != nil {
		fields[key] = IntValue(*v)
	}
}

func setBool(fields map[string]Value, key string, v *bool) {
	if v != nil {
		fields[key] = BoolValue(*v)
	}
}
