package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tobiasmeier/timeslot_booking/handlers"
	"github.com/tobiasmeier/timeslot_booking/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AuthTokenRequired(), middleware.AdminRequired())

	admin.Post("/resources", handlers.CreateResource)
	admin.Delete("/resources/:resourceId", handlers.DeleteResource)
	admin.Post("/resources/:resourceId/weekdays", handlers.CreateWeekday)
	admin.Delete("/weekdays/:weekdayId", handlers.DeleteWeekday)
	admin.Post("/weekdays/:weekdayId/timeslots", handlers.CreateTimeslot)
	admin.Delete("/timeslots/:timeslotId", handlers.DeleteTimeslot)

	admin.Get("/settings", handlers.GetSettings)
	admin.Put("/settings", handlers.UpdateSettings)

	admin.Get("/blocked-dates", handlers.GetBlockedDates)
	admin.Post("/blocked-dates", handlers.CreateBlockedDate)
	admin.Delete("/blocked-dates/:blockedDateId", handlers.DeleteBlockedDate)

	admin.Post("/invites", handlers.InviteUser)
}
