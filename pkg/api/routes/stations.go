package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type StationLookup interface {
	Lookup(code string) (string, error)
	Validate(code string) error
}

func StationsRouter(router fiber.Router, directory StationLookup) {
	router.Get("/:code", func(c *fiber.Ctx) error {
		code := strings.ToUpper(c.Params("code"))

		if err := directory.Validate(code); err != nil {
			return sendError(c, err)
		}

		name, err := directory.Lookup(code)
		if err != nil {
			return sendError(c, err)
		}

		return c.JSON(fiber.Map{
			"Code": code,
			"Name": name,
		})
	})
}
