package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/trains/pkg/enricher"
	"github.com/travigo/trains/pkg/stations"
	"github.com/travigo/trains/pkg/transportapi"
)

// StatusForError picks the response status for an error returned by the planner
func StatusForError(err error) int {
	switch {
	case errors.Is(err, stations.ErrInvalidFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, stations.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, transportapi.ErrNetwork):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, transportapi.ErrUpstream), errors.Is(err, enricher.ErrPartialFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	c.Status(StatusForError(err))
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
