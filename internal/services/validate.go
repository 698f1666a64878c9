package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report json names so errors match the request fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) || len(validateErrs) == 0 {
		return err
	}

	fe := validateErrs[0]

	var reason string
	switch fe.ActualTag() {
	case "required":
		reason = "is a required field"
	case "oneof":
		reason = fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		reason = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	default:
		reason = "is not valid"
	}

	return &ValidationError{Field: fe.Field(), Reason: reason}
}
