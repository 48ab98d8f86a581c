package middleware

import (
	"reflect"
	"strings"

	"github.com/dashboard/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's binding validator to report field
// names from json/form tags, so binding errors speak the API's field
// names rather than Go struct names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// FormatBindingError shapes a binding failure into the standard error
// envelope. Validator errors become per-field message lists; anything
// else (malformed JSON, type mismatches) stays a single generic error.
func FormatBindingError(err error, requestID string) dto.Response {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string][]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = append(fields[e.Field()], bindingMessage(e))
		}
		return dto.NewValidationErrorResponse("Request validation failed", requestID, fields)
	}

	return dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Invalid request body", requestID)
}

// bindingMessage returns a human-readable message for one field error
func bindingMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Invalid URL format"
	case "numeric":
		return "Must be numeric"
	default:
		return "Invalid value"
	}
}
