package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validationError(helpers.FormatValidationErrors(verrs))
	}
	return validationError(map[string]string{"input": err.Error()})
}
