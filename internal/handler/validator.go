package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/tidepool/internal/domain"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// resourceTypePattern matches a normalized resource type such as "kelp" or "sea_glass"
var resourceTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// GetValidator returns the shared validator, building it on first use
var GetValidator = sync.OnceValue(newValidator)

func newValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so clients see the keys they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("resource_type", validateResourceType); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

var tagMessages = map[string]func(param string) string{
	"required":      func(string) string { return "This field is required" },
	"resource_type": func(string) string { return "Must be a lowercase resource name like kelp or sea_glass" },
	"max":           func(p string) string { return "Must be at most " + p },
	"min":           func(p string) string { return "Must be at least " + p },
	"gte":           func(p string) string { return "Must be at least " + p },
	"lte":           func(p string) string { return "Must be at most " + p },
	"excludesall":   func(string) string { return "Contains invalid characters" },
}

// FormatValidationError maps each failing field to a client-facing message.
// Struct and Go field names never leak.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := "Invalid value"
		if format, ok := tagMessages[fe.Tag()]; ok {
			msg = format(fe.Param())
		}
		out[fieldPath(fe)] = msg
	}
	return out
}

// fieldPath drops the root struct name from the namespace, e.g. "tool.kind"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// validateResourceType accepts any casing or surrounding whitespace the engine would normalize away
func validateResourceType(fl validator.FieldLevel) bool {
	rt := domain.ResourceType(fl.Field().String()).Normalize()
	return resourceTypePattern.MatchString(string(rt))
}
