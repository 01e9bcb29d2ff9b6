// Package validate runs struct-tag validation and returns a flat map of
// field → message, keyed by the field's JSON name.
//
// Rules are those of go-playground/validator (comma-separated in the
// `validate` tag):
//
//	type Input struct {
//	    Name     string  `json:"name"     validate:"required,max=255"`
//	    Email    string  `json:"email"    validate:"required,email"`
//	    Role     string  `json:"role"     validate:"omitempty,oneof=user admin employee"`
//	    Stock    *int    `json:"stock"    validate:"omitempty,gte=0"`
//	}
//
// Nested structs are reported with a dotted path, e.g. "profile.address".
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// Struct validates v and returns fieldName → message. An empty map means v
// is valid. Non-struct values are never invalid.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	rv := reflect.ValueOf(s)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errs
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	err := instance().Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		if _, seen := errs[key]; seen {
			continue
		}
		errs[key] = message(fe)
	}
	return errs
}

// HasErrors reports whether errs contains at least one failure.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

// fieldKey drops the root struct name from a validator namespace.
func fieldKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in the format " + fe.Param()
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
