// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"math"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("decimal2", validateDecimal2)
	}
}

// validateDecimal2 accepts monetary amounts with at most two decimal places,
// matching the decimal(10,2) column they are stored in.
func validateDecimal2(fl validator.FieldLevel) bool {
	amount := fl.Field().Float()
	scaled := amount * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
