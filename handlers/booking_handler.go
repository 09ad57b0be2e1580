package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tobiasmeier/timeslot_booking/database"
	"github.com/tobiasmeier/timeslot_booking/models"
	"github.com/tobiasmeier/timeslot_booking/scheduling"
	"github.com/tobiasmeier/timeslot_booking/services"
	"github.com/tobiasmeier/timeslot_booking/tokens"
)

const bookingDayLayout = "2006-01-02"

type CreateBookingRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	BookingDay string  `json:"booking_day" validate:"required,datetime=2006-01-02"`
}

type AdminBookingRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	BookingDay string  `json:"booking_day" validate:"required,datetime=2006-01-02"`

	IgnoreDeadlines       bool `json:"ignore_deadlines"`
	IgnoreMaxWeekDistance bool `json:"ignore_max_week_distance"`
	AllowToExceedCapacity bool `json:"allow_to_exceed_capacity"`
}

// BookingResponse is the holder-facing shape of a booking: the occurrence
// instants and verification state, without the nested timeslot internals the
// admin endpoints expose.
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	IsVerified bool      `json:"is_verified"`
}

func toBookingResponses(bookings []models.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = BookingResponse{
			ID:         b.ID,
			Name:       b.Name,
			Email:      b.Email,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
			IsVerified: b.IsVerified,
		}
	}
	return responses
}

func bookingError(c *fiber.Ctx, err error) error {
	var rejection *scheduling.RejectionError
	switch {
	case errors.As(err, &rejection):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": rejection.Reason})
	case errors.Is(err, services.ErrEmailRequired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCapacityExceeded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		log.Printf("🔥 Booking operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func parseBookingDay(s string) (time.Time, error) {
	return time.ParseInLocation(bookingDayLayout, s, time.Local)
}

// CreateBooking is the public self-service flow: deadlines and the advance
// horizon are enforced, mail is required when settings say so, and the
// booking starts unverified unless mail confirmation is disabled.
func CreateBooking(c *fiber.Ctx) error {
	timeslotID, err := uuid.Parse(c.Params("timeslotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid timeslot id"})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	day, err := parseBookingDay(req.BookingDay)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking day"})
	}

	settings, err := services.LoadSettings(database.DB)
	if err != nil {
		return bookingError(c, err)
	}

	booking, err := services.CreateBooking(database.DB, timeslotID, services.BookingData{
		Name:       req.Name,
		Email:      req.Email,
		BookingDay: day,
	}, services.BookingOptions{
		RequireMail: settings.RequireMailConfirmation,
		AutoVerify:  !settings.RequireMailConfirmation,
	})
	if err != nil {
		return bookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// LookupBookings returns all live bookings tied to the email inside a booking
// lookup token.
func LookupBookings(c *fiber.Ctx) error {
	claims, err := tokens.Verify(jwtSecret(), tokens.TypeBookingLookup, c.Query("token"))
	if err != nil {
		log.Printf("Lookup token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	email, _ := claims["email"].(string)

	bookings, err := services.FindBookingsByEmail(database.DB, email)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(toBookingResponses(bookings))
}

type VerifyBookingRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyBookings marks every live booking of the token's email as verified.
func VerifyBookings(c *fiber.Ctx) error {
	var req VerifyBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	claims, err := tokens.Verify(jwtSecret(), tokens.TypeBookingLookup, req.Token)
	if err != nil {
		log.Printf("Verification token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	email, _ := claims["email"].(string)

	bookings, err := services.FindBookingsByEmail(database.DB, email)
	if err != nil {
		return bookingError(c, err)
	}
	for i := range bookings {
		if bookings[i].IsVerified {
			continue
		}
		bookings[i].IsVerified = true
		if err := database.DB.Model(&models.Booking{}).Where("id = ?", bookings[i].ID).Update("is_verified", true).Error; err != nil {
			return bookingError(c, err)
		}
	}
	return c.JSON(toBookingResponses(bookings))
}

// DeleteOwnBooking lets a booking holder cancel via their lookup token. The
// token's email must match the booking.
func DeleteOwnBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	claims, err := tokens.Verify(jwtSecret(), tokens.TypeBookingLookup, c.Query("token"))
	if err != nil {
		log.Printf("Lookup token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	email, _ := claims["email"].(string)

	booking, err := services.FindBookingByID(database.DB, bookingID)
	if err != nil {
		return bookingError(c, err)
	}
	if booking.Email == nil || *booking.Email != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	if err := services.DeleteBooking(database.DB, bookingID); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Booking deleted."})
}

// GetBookingConditions answers the "can I still book this weekday" UI query
// with the earliest and latest bookable occurrence dates.
func GetBookingConditions(c *fiber.Ctx) error {
	weekdayID, err := uuid.Parse(c.Params("weekdayId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weekday id"})
	}

	var weekday models.Weekday
	if err := database.DB.First(&weekday, "id = ?", weekdayID).Error; err != nil {
		return bookingError(c, err)
	}
	settings, err := services.LoadSettings(database.DB)
	if err != nil {
		return bookingError(c, err)
	}

	now := time.Now()
	earliest := scheduling.EarliestBookingDate(weekday.Name, now, settings.EnableBookingDeadline, settings.BookingDeadlineMillis)

	response := fiber.Map{
		"weekday":               weekday.Name,
		"earliest_booking_date": earliest.Format(bookingDayLayout),
	}
	if latest := scheduling.LatestBookingDate(weekday.Name, now, settings.MaxBookingWeekDistance); !latest.IsZero() {
		response["latest_booking_date"] = latest.Format(bookingDayLayout)
	}
	return c.JSON(response)
}

// GetBooking returns a single live booking for administrators.
func GetBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	booking, err := services.FindBookingByID(database.DB, bookingID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}

// GetBookings lists all live bookings for administrators.
func GetBookings(c *fiber.Ctx) error {
	bookings, err := services.FindBookings(database.DB)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(bookings)
}

// AdminCreateBooking creates a booking with administrative bypasses:
// auto-verified, no mail requirement, deadlines/horizon/capacity bypassable
// per request.
func AdminCreateBooking(c *fiber.Ctx) error {
	timeslotID, err := uuid.Parse(c.Params("timeslotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid timeslot id"})
	}

	req, day, err := parseAdminBookingRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.CreateBooking(database.DB, timeslotID, services.BookingData{
		Name:       req.Name,
		Email:      req.Email,
		BookingDay: day,
	}, adminOptions(req))
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// AdminUpdateBooking re-validates the interval and applies the update;
// capacity is never re-checked against the booking itself.
func AdminUpdateBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	req, day, err := parseAdminBookingRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.UpdateBooking(database.DB, bookingID, services.BookingData{
		Name:       req.Name,
		Email:      req.Email,
		BookingDay: day,
	}, adminOptions(req))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}

func AdminDeleteBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	if err := services.DeleteBooking(database.DB, bookingID); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Booking deleted."})
}

func parseAdminBookingRequest(c *fiber.Ctx) (AdminBookingRequest, time.Time, error) {
	var req AdminBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return req, time.Time{}, errors.New("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return req, time.Time{}, err
	}
	day, err := parseBookingDay(req.BookingDay)
	if err != nil {
		return req, time.Time{}, errors.New("Invalid booking day")
	}
	return req, day, nil
}

func adminOptions(req AdminBookingRequest) services.BookingOptions {
	return services.BookingOptions{
		IgnoreDeadlines:       req.IgnoreDeadlines,
		IgnoreMaxWeekDistance: req.IgnoreMaxWeekDistance,
		AllowToExceedCapacity: req.AllowToExceedCapacity,
		RequireMail:           false,
		AutoVerify:            true,
	}
}
