package handlers

import (
	"errors"
	"log"

	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Output is the body of every API response.
type Output struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Output{OK: true, Message: message, Data: data})
}

// fail converts err into an Output. Domain errors keep their message; anything
// else is logged and reported as "Could not <operation>".
func fail(c *fiber.Ctx, operation string, err error) error {
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(Output{
			Message: "Validation failed",
			Errors:  invalid.Fields,
		})
	}

	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Error trying to %s: %v", operation, err)
		return c.Status(status).JSON(Output{Message: "Could not " + operation})
	}
	return c.Status(status).JSON(Output{Message: err.Error()})
}

func statusOf(err error) int {
	var domain *services.Error
	if !errors.As(err, &domain) {
		return fiber.StatusInternalServerError
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAlreadyExists), errors.Is(err, services.ErrAlreadyTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidOption):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders framework errors (unknown routes, recovered panics) as an Output.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(Output{Message: message})
}
