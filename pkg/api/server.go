package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/trains/pkg/api/routes"
)

// NewApp builds the web app without binding it to a listener
func NewApp(journeyPlanner routes.JourneyPlanner, directory routes.StationLookup) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("/version", routes.APIVersion)

	routes.StationsRouter(webApp.Group("/stations"), directory)
	routes.TrainsRouter(webApp, journeyPlanner)

	return webApp
}

func SetupServer(listen string, journeyPlanner routes.JourneyPlanner, directory routes.StationLookup) error {
	return NewApp(journeyPlanner, directory).Listen(listen)
}
