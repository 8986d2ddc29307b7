package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"sustainbite/domain"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the failure envelope. The code classifies err; the
// error string is diagnostic detail only.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
		Code:    CodeFor(status, err),
	}
	if err != nil {
		res.Error = err.Error()
	}
	if verr, ok := domain.AsValidationError(err); ok {
		res.Fields = verr.Fields
	}
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
	}
	return c.Status(status).JSON(res)
}

// ServiceError maps a service error onto its HTTP status. fallback is the
// message used when the error carries no more specific one.
func ServiceError(c *fiber.Ctx, fallback string, err error) error {
	status, message := Classify(err)
	if message == "" {
		message = fallback
	}
	return ErrorResponse(c, status, message, err)
}

// Classify returns the status for err and, when the error has a fixed
// user-facing message, that message.
func Classify(err error) (int, string) {
	if _, ok := domain.AsValidationError(err); ok {
		return fiber.StatusBadRequest, ""
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized, domain.MessageUnauthorized
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, domain.MessageFailedLogin
	case errors.Is(err, domain.ErrFoodListingNotFound),
		errors.Is(err, domain.ErrFoodListingForbidden):
		return fiber.StatusNotFound, ""
	case errors.Is(err, domain.ErrDuplicateEmail):
		return fiber.StatusBadRequest, domain.ErrDuplicateEmail.Error()
	case errors.Is(err, domain.ErrInvalidImageFormat):
		return fiber.StatusBadRequest, domain.ErrInvalidImageFormat.Error()
	case errors.Is(err, domain.ErrImageStorageDisabled):
		return fiber.StatusServiceUnavailable, domain.ErrImageStorageDisabled.Error()
	default:
		return fiber.StatusInternalServerError, ""
	}
}

func CodeFor(status int, err error) string {
	if _, ok := domain.AsValidationError(err); ok {
		return "validation_error"
	}
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, domain.ErrImageStorageDisabled):
		return "storage_disabled"
	}
	switch status {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusTooManyRequests:
		return "rate_limited"
	case fiber.StatusServiceUnavailable:
		return "unavailable"
	default:
		if status >= fiber.StatusInternalServerError {
			return "internal_error"
		}
		return ""
	}
}
