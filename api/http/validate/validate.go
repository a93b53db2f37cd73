package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/qkart/backend/pkg/apperr"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// password: at least 8 characters with one letter and one digit.
	_ = val.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		if len(pw) < 8 {
			return false
		}
		var letter, digit bool
		for _, r := range pw {
			switch {
			case unicode.IsLetter(r):
				letter = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return letter && digit
	})
	return val
}

// Struct validates a request DTO against its tags and converts the first
// violation into an InvalidArgument error suitable for the client.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperr.InvalidArgument("invalid request body")
	}
	return apperr.InvalidArgument(fieldMessage(errs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "password":
		return "password must be at least 8 characters and contain at least one letter and one number"
	case "gt", "gte", "min":
		return fmt.Sprintf("%s is too small", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
