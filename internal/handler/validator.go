package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
// Field names in errors follow the json tags of the request struct.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldErrors converts validator failures into problem detail entries
func fieldErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: tagMessage(fe)})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "numeric":
		return "must be numeric"
	case "number":
		return "must contain only digits"
	case "datetime":
		return fmt.Sprintf("must be a date formatted %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "dive":
		return "contains an invalid item"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// normalizer is implemented by requests that clean up their input before
// validation runs
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the request body into req and runs struct
// validation. On failure the problem response has already been written and
// ok is false.
func bindAndValidate(c echo.Context, req interface{}) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, NewValidationError(c, "Invalid request body", nil)
	}
	if n, isNormalizer := req.(normalizer); isNormalizer {
		n.normalize()
	}
	if c.Echo().Validator == nil {
		return true, nil
	}
	if err := c.Validate(req); err != nil {
		if fields := fieldErrors(err); fields != nil {
			return false, NewValidationError(c, "Validation failed", fields)
		}
		return false, NewValidationError(c, err.Error(), nil)
	}
	return true, nil
}
