package presenter

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qkart/backend/pkg/apperr"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError renders a domain error as {statusCode-mapped status, message}.
// Unknown errors render as a generic 500 with no internal detail.
func FromError(c *fiber.Ctx, err error) error {
	return Error(c, apperr.Status(err), apperr.Message(err))
}
