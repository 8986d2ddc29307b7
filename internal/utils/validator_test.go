package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Description string `json:"description" validate:"required,trimmed_min=10"`
	Contact     string `json:"contact" validate:"required,phone"`
	Owner       string `json:"ownerId" validate:"isdefault"`
}

func TestValidator_CustomTagsAndJSONNames(t *testing.T) {
	v := NewValidator()

	fields := ValidationErrors(v.Struct(sample{
		Description: "  short   padded  ",
		Contact:     "+91 (612) 234-5678",
	}))
	assert.Empty(t, fields)

	fields = ValidationErrors(v.Struct(sample{
		Description: "   rice    ",
		Contact:     "ring me",
		Owner:       "someone",
	}))
	assert.Equal(t, map[string]string{
		"description": "must be at least 10 characters",
		"contact":     "must be a valid phone number",
		"ownerId":     "must not be supplied; ownership is taken from the session",
	}, fields)
}

func TestValidationErrors_IgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, ValidationErrors(nil))
	assert.Nil(t, ValidationErrors(assert.AnError))
}
