package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrValidation marks a request whose fields broke a rule. The response
	// is 422 with the per-field messages of ValidationErrors.
	ErrValidation = errors.New("validation failed")

	// ErrBinding marks a body or query that could not be decoded at all.
	ErrBinding = errors.New("binding failed")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// timestampLayouts are the accepted forms of available_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// catalogRules are the request rules validator does not ship with. uuid
// replaces the built-in one so an empty optional id passes.
var catalogRules = map[string]validator.Func{
	"uuid": func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || uuid.Validate(v) == nil
	},
	"notempty": func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	},
	"slug": func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	},
	"timestamp": func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	},
}

// validate reports fields by their JSON name.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range catalogRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}()

// Validate checks v against its validate tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate binds JSON body to the struct and validates it.
// A JSON value of the wrong type for a field is a validation failure, not
// a binding failure, so the caller can report it per field.
func BindAndValidate(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}

		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate binds query parameters and validates.
func BindQueryAndValidate(c *gin.Context, v any) error {
	err := c.ShouldBindQuery(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors extracts field-level error messages from a validation
// error. Fields keep their JSON names.
func ValidationErrors(err error) map[string][]string {
	fieldErrors := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			field := fieldErr.Field()
			fieldErrors[field] = append(fieldErrors[field], validationMessage(fieldErr))
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErrorField(typeErr)
		fieldErrors[field] = append(fieldErrors[field],
			fmt.Sprintf("The %s field must be of type %s.", humanize(field), jsonKind(typeErr.Type)))
	}

	return fieldErrors
}

// typeErrorField returns the JSON key of a mistyped field. The decoder
// prefixes it with the names of embedded structs, e.g. "productFields.price".
func typeErrorField(typeErr *json.UnmarshalTypeError) string {
	if i := strings.LastIndexByte(typeErr.Field, '.'); i >= 0 {
		return typeErr.Field[i+1:]
	}

	return typeErr.Field
}

// validationMessages maps validation tags to message templates.
// {field} is the humanized field name and {param} the tag parameter.
var validationMessages = map[string]string{
	"required":  "The {field} field is required.",
	"uuid":      "The {field} field must be a valid UUID.",
	"notempty":  "The {field} field must not be empty.",
	"slug":      "The {field} field may only contain lowercase letters, digits and single dashes.",
	"timestamp": "The {field} field must be a valid date.",
	"gte":       "The {field} field must be at least {param}.",
	"lte":       "The {field} field must not be greater than {param}.",
	"gt":        "The {field} field must be greater than {param}.",
	"oneof":     "The selected {field} is invalid.",
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	field := humanize(fe.Field())

	// Handle min/max with type-aware messages
	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, field, param, fe.Type())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.NewReplacer("{field}", field, "{param}", param).Replace(msg)
	}

	return fmt.Sprintf("The %s field failed the %s rule.", field, tag)
}

// minMaxMessage returns the appropriate message for min/max validation.
func minMaxMessage(tag, field, param string, typ reflect.Type) string {
	suffix := ""
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() == reflect.String {
		suffix = " characters"
	}

	if tag == "min" {
		return fmt.Sprintf("The %s field must be at least %s%s.", field, param, suffix)
	}

	return fmt.Sprintf("The %s field must not be greater than %s%s.", field, param, suffix)
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}

// ParseTimestamp parses a date in any accepted layout. Times without a
// zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
