package middleware

import (
	"errors"
	"testing"

	"github.com/dashboard/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gin's validator engine reads the binding tag, not validate
type bindingFixture struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	ImageURL string `json:"image_url" binding:"omitempty,max=16"`
}

func TestSetupValidator_UsesJSONTagNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(bindingFixture{Email: "not-an-email"})
	require.Error(t, err)

	validationErrors, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	names := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		names = append(names, e.Field())
	}
	assert.Contains(t, names, "name")
	assert.Contains(t, names, "email")
}

func TestFormatBindingError_ValidationErrors(t *testing.T) {
	SetupValidator()

	v := binding.Validator.Engine().(*validator.Validate)
	err := v.Struct(bindingFixture{
		Email:    "not-an-email",
		ImageURL: "https://example.com/a-rather-long-path",
	})
	require.Error(t, err)

	resp := FormatBindingError(err, "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Contains(t, resp.Error.Fields["name"], "This field is required")
	assert.Contains(t, resp.Error.Fields["email"], "Invalid email format")
	assert.Contains(t, resp.Error.Fields["image_url"], "Must be at most 16 characters")
}

func TestFormatBindingError_NonValidationError(t *testing.T) {
	resp := FormatBindingError(errors.New("unexpected EOF"), "req-2")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "Invalid request body", resp.Error.Message)
	assert.Empty(t, resp.Error.Fields)
}
