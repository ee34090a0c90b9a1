package validators

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// New returns a validator with the custom rules registered. Errors report
// fields by their JSON name.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	if err := validate.RegisterValidation("notblank", NotBlank); err != nil {
		log.Fatalf("failed to register 'notblank' validator: %v", err)
	}
	return validate
}

// NotBlank rejects empty strings and strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		log.Warnf("validator 'notblank' applied to non-string type: %s", field.Kind().String())
		return false
	}

	return strings.IndexFunc(field.String(), func(r rune) bool {
		return !unicode.IsSpace(r)
	}) >= 0
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
