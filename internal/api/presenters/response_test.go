package presenters

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"sustainbite/domain"
)

func TestClassify(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("description", "is required")

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{verr, fiber.StatusBadRequest, "validation_error"},
		{domain.ErrTokenExpired, fiber.StatusUnauthorized, "unauthorized"},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrFoodListingNotFound, fiber.StatusNotFound, "not_found"},
		{domain.ErrFoodListingForbidden, fiber.StatusNotFound, "not_found"},
		{domain.ErrDuplicateEmail, fiber.StatusBadRequest, "duplicate_email"},
		{domain.ErrImageStorageDisabled, fiber.StatusServiceUnavailable, "storage_disabled"},
		{fmt.Errorf("find user: %w", domain.ErrStoreUnavailable), fiber.StatusInternalServerError, "store_unavailable"},
		{errors.New("boom"), fiber.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, _ := Classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, CodeFor(status, tc.err))
		})
	}
}

func TestClassify_ForbiddenLooksLikeNotFound(t *testing.T) {
	s1, m1 := Classify(domain.ErrFoodListingForbidden)
	s2, m2 := Classify(domain.ErrFoodListingNotFound)
	assert.Equal(t, s1, s2)
	assert.Equal(t, m1, m2)
}
