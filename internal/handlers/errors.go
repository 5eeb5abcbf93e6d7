package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/payflow/internal/apperr"
)

// mapError translates service errors into fiber errors. Anything unmapped
// propagates as a 500.
func mapError(err error) error {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, apperr.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrMerchantInactive):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrMerchantNotFound),
		errors.Is(err, apperr.ErrTransactionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

// ErrorHandler renders every error as {"detail": message} so the UI never
// sees a bare transport failure.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
		message = ferr.Message
	}

	return c.Status(code).JSON(fiber.Map{"detail": message})
}
