package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// EAN-13 barcodes: exactly 13 digits. Empty values are handled by
	// omitempty on the field tag.
	validate.RegisterValidation("ean13", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 13 {
			return false
		}
		for _, r := range code {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
