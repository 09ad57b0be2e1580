package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tobiasmeier/timeslot_booking/database"
	"github.com/tobiasmeier/timeslot_booking/models"
	"github.com/tobiasmeier/timeslot_booking/services"
)

func GetSettings(c *fiber.Ctx) error {
	settings, err := services.LoadSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(settings)
}

type SettingsRequest struct {
	BookingDeadlineMillis   int64 `json:"booking_deadline_millis" validate:"min=0"`
	EnableBookingDeadline   bool  `json:"enable_booking_deadline"`
	MaxBookingWeekDistance  int   `json:"max_booking_week_distance" validate:"min=-1"`
	RequireMailConfirmation bool  `json:"require_mail_confirmation"`
}

// UpdateSettings replaces the singleton row as a whole.
func UpdateSettings(c *fiber.Ctx) error {
	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	settings, err := services.ReplaceSettings(database.DB, models.Settings{
		BookingDeadlineMillis:   req.BookingDeadlineMillis,
		EnableBookingDeadline:   req.EnableBookingDeadline,
		MaxBookingWeekDistance:  req.MaxBookingWeekDistance,
		RequireMailConfirmation: req.RequireMailConfirmation,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
	}
	return c.JSON(settings)
}

func GetBlockedDates(c *fiber.Ctx) error {
	var blocked []models.BlockedDate
	if err := database.DB.Order("date asc").Find(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(blocked)
}

type BlockedDateRequest struct {
	Date string  `json:"date" validate:"required,datetime=2006-01-02"`
	Note *string `json:"note,omitempty"`
}

func CreateBlockedDate(c *fiber.Ctx) error {
	var req BlockedDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	day, err := time.ParseInLocation(bookingDayLayout, req.Date, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	blocked := models.BlockedDate{Date: day, Note: req.Note}
	if err := database.DB.Create(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create blocked date"})
	}
	return c.Status(fiber.StatusCreated).JSON(blocked)
}

func DeleteBlockedDate(c *fiber.Ctx) error {
	blockedID, err := uuid.Parse(c.Params("blockedDateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid blocked date id"})
	}
	result := database.DB.Delete(&models.BlockedDate{}, "id = ?", blockedID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete blocked date"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blocked date not found"})
	}
	return c.JSON(fiber.Map{"message": "Blocked date deleted."})
}
