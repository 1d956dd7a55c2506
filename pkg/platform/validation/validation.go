// Package validation enforces presence and format constraints on incoming
// request objects before they reach a service.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

// Column bounds of the person and country records.
const (
	MaxPersonNameLength  = 40
	MaxEmailLength       = 40
	MaxAddressLength     = 200
	MaxCountryNameLength = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return domain.Gender(fl.Field().String()).IsValid()
	})
	return v
}

// Struct validates v against its `validate` tags. A nil pointer is rejected.
//
// Errors: returns CodeValidation with one message per failing field.
func Struct(v any) error {
	if v == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid request")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return dErrors.New(dErrors.CodeValidation, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " cannot be blank"
	case "email":
		return fe.Field() + " should be a valid email"
	case "max":
		return fmt.Sprintf("%s exceeds max length %s", fe.Field(), fe.Param())
	case "gender":
		return fe.Field() + " must be one of Male, Female, Other"
	default:
		return fe.Field() + " is invalid"
	}
}
