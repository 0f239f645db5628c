// Package validation holds the input schemas of the site and the rules that
// normalize raw request payloads before they reach storage.
//
// Every input struct carries two tag sets: `validate` rules apply on create and
// `patch` rules apply on partial update, where an absent field is skipped.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gbur-rwanda/gbur-backend/errs"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	createValidator *validator.Validate
	patchValidator  *validator.Validate
	validatorOnce   sync.Once
)

func validators() (*validator.Validate, *validator.Validate) {
	validatorOnce.Do(func() {
		createValidator = newValidator("validate")
		patchValidator = newValidator("patch")
	})
	return createValidator, patchValidator
}

func newValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)

	// Report fields by their JSON names so messages match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		ns, ok := field.Interface().(NullString)
		if !ok || ns.Value == nil {
			return ""
		}
		return *ns.Value
	}, NullString{})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("imagepath", func(fl validator.FieldLevel) bool {
		return IsImagePath(fl.Field().String())
	})
	return v
}

// IsImagePath reports whether s is a site-relative path or an http(s) URL.
func IsImagePath(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Create validates in against its create rules.
func Create(in interface{}) error {
	v, _ := validators()
	return check(v, in)
}

// Patch validates in against its partial-update rules.
func Patch(in interface{}) error {
	_, v := validators()
	return check(v, in)
}

func check(v *validator.Validate, in interface{}) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.NewInternalErrorWithCause("validation could not run", err)
	}

	fields := make([]errs.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, errs.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return errs.NewValidationError(fields)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return fmt.Sprintf("%s is required", field)
			}
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "slug":
		return fmt.Sprintf("%s must contain only lowercase letters, numbers and single hyphens", field)
	case "imagepath":
		return fmt.Sprintf("%s must start with /, http:// or https://", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
