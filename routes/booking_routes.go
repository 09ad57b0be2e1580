package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tobiasmeier/timeslot_booking/handlers"
	"github.com/tobiasmeier/timeslot_booking/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/timeslots/:timeslotId/bookings", handlers.CreateBooking)
	api.Get("/bookings/lookup", handlers.LookupBookings)
	api.Post("/bookings/verify", handlers.VerifyBookings)
	api.Delete("/bookings/:bookingId", handlers.DeleteOwnBooking)

	admin := api.Group("/admin", middleware.Protected(), middleware.AuthTokenRequired(), middleware.AdminRequired())
	admin.Get("/bookings", handlers.GetBookings)
	admin.Get("/bookings/:bookingId", handlers.GetBooking)
	admin.Post("/timeslots/:timeslotId/bookings", handlers.AdminCreateBooking)
	admin.Put("/bookings/:bookingId", handlers.AdminUpdateBooking)
	admin.Delete("/bookings/:bookingId", handlers.AdminDeleteBooking)
}
