package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tobiasmeier/timeslot_booking/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/resources", handlers.GetResources)
	api.Get("/weekdays/:weekdayId/conditions", handlers.GetBookingConditions)
}
