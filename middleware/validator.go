package middleware

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs struct-tag validation; handlers call it on bound input.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
