package handlers

import (
	"errors"
	"log"

	"food-share-system/services"

	"github.com/gofiber/fiber/v2"
)

// serviceError translates the services error taxonomy into HTTP statuses.
// Storage failures are logged here and reported opaquely.
func serviceError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	var invalid *services.ValidationError

	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflict.Error()})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalid.Error()})
	default:
		log.Printf("DB error on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
