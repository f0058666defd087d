package routes

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/trains/pkg/planner"
)

type JourneyPlanner interface {
	PlanJourney(ctx context.Context, originCode string, destinationCode string) (*planner.Report, error)
}

type trainsHandler struct {
	planner JourneyPlanner
}

func TrainsRouter(router fiber.Router, journeyPlanner JourneyPlanner) {
	handler := &trainsHandler{planner: journeyPlanner}

	router.Get("/", handler.getReport)
	router.Get("/journey", handler.getJourney)
}

func (h *trainsHandler) plan(c *fiber.Ctx) (*planner.Report, error) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))

	if from == "" || to == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Parameters from and to are required")
	}

	return h.planner.PlanJourney(c.UserContext(), from, to)
}

func (h *trainsHandler) getReport(c *fiber.Ctx) error {
	report, err := h.plan(c)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(report.Text)
}

func (h *trainsHandler) getJourney(c *fiber.Ctx) error {
	report, err := h.plan(c)
	if err != nil {
		return respondError(c, err)
	}

	groups := []string{"basic"}
	if c.QueryBool("stops") {
		groups = append(groups, "stops")
	}

	journeyReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, report.Journey)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce journey",
		})
	}

	return c.JSON(journeyReduced)
}

func respondError(c *fiber.Ctx, err error) error {
	if fiberError, ok := err.(*fiber.Error); ok {
		c.Status(fiberError.Code)
		return c.JSON(fiber.Map{
			"error": fiberError.Message,
		})
	}

	return sendError(c, err)
}
