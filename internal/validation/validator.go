package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"expense-tracker-api/internal/models"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("expense_type", validateExpenseType)
	_ = v.RegisterValidation("expense_date", validateExpenseDate)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateExpenseType validates that a transaction type is one of the
// allowed values
func validateExpenseType(fl validator.FieldLevel) bool {
	return models.IsValidExpenseType(fl.Field().String())
}

// validateExpenseDate validates that a date string parses as a calendar
// date in YYYY-MM-DD form
func validateExpenseDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}
