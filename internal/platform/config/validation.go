package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate names fields by their koanf key so messages read like the YAML
// the user wrote.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return v
}()

// ruleMessages phrase a failed rule. %[1]s is the key and %[2]s the rule
// parameter.
var ruleMessages = map[string]string{
	"required":      "%[1]s is required",
	"required_if":   "%[1]s is required when %[2]s",
	"required_with": "%[1]s is required when %[2]s is set",
	"min":           "%[1]s must be at least %[2]s",
	"max":           "%[1]s must be at most %[2]s",
	"oneof":         "%[1]s must be one of: %[2]s",
	"url":           "%[1]s must be a valid URL",
}

// Validate reports every invalid setting at once, one per line.
func (c *Config) Validate() error {
	err := validate.Struct(c)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		lines[i] = describe(fe)
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := keyPath(fe.Namespace())

	if msg, ok := ruleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(msg, key, fe.Param())
	}

	return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
}

// keyPath turns "Config.client.retry.max_attempts" into
// "client.retry.max_attempts".
func keyPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}

	return strings.ToLower(rest)
}
