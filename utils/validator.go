package utils

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// password strength: min 8 chars with upper, lower, digit and symbol
	v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	return v
}

// IsStrongPassword reports whether the password has at least 8 characters
// including one uppercase, one lowercase, one digit and one symbol.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// ValidateStruct runs the validate tags of a request body and returns one
// {field: message} entry per failed rule, for the 422 envelope.
func ValidateStruct(body any) []map[string]string {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []map[string]string{{"body": "invalid request body"}}
	}

	var fieldErrors []map[string]string
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		fieldErrors = append(fieldErrors, map[string]string{field: messageForTag(field, fieldError)})
	}
	return fieldErrors
}

func messageForTag(field string, fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email"
	case "min":
		return field + " should be atleast " + fieldError.Param() + " chars"
	case "max":
		return field + " should not be more than " + fieldError.Param() + " chars"
	case "oneof":
		return field + " should be one of: " + fieldError.Param()
	case "strongpassword":
		return field + " should contain one uppercase, one lowercase, one number and one special character and min length must be 8"
	default:
		return field + " is invalid"
	}
}
