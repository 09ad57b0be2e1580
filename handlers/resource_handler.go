package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tobiasmeier/timeslot_booking/database"
	"github.com/tobiasmeier/timeslot_booking/models"
)

type ResourceRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

type WeekdayRequest struct {
	Name string `json:"name" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}

type TimeslotRequest struct {
	StartHours   int `json:"start_hours" validate:"min=0,max=23"`
	StartMinutes int `json:"start_minutes" validate:"min=0,max=59"`
	EndHours     int `json:"end_hours" validate:"min=0,max=23"`
	EndMinutes   int `json:"end_minutes" validate:"min=0,max=59"`
	Capacity     int `json:"capacity" validate:"required,min=1"`
}

// GetResources is the public browse endpoint: every resource with its
// weekdays and timeslots, without bookings.
func GetResources(c *fiber.Ctx) error {
	var resources []models.Resource
	if err := database.DB.Preload("Weekdays.Timeslots").Order("name asc").Find(&resources).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(resources)
}

func CreateResource(c *fiber.Ctx) error {
	var req ResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource := models.Resource{Name: req.Name}
	if err := database.DB.Create(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A resource with this name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resource"})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

// DeleteResource removes a resource together with its weekdays, timeslots and
// bookings.
func DeleteResource(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("resourceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource id"})
	}
	result := database.DB.Delete(&models.Resource{}, "id = ?", resourceID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete resource"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}
	return c.JSON(fiber.Map{"message": "Resource deleted."})
}

func CreateWeekday(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("resourceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource id"})
	}

	var req WeekdayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", resourceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	weekday := models.Weekday{ResourceID: resource.ID, Name: req.Name}
	if err := database.DB.Create(&weekday).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create weekday"})
	}
	return c.Status(fiber.StatusCreated).JSON(weekday)
}

func DeleteWeekday(c *fiber.Ctx) error {
	weekdayID, err := uuid.Parse(c.Params("weekdayId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weekday id"})
	}
	result := database.DB.Delete(&models.Weekday{}, "id = ?", weekdayID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete weekday"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Weekday not found"})
	}
	return c.JSON(fiber.Map{"message": "Weekday deleted."})
}

func CreateTimeslot(c *fiber.Ctx) error {
	weekdayID, err := uuid.Parse(c.Params("weekdayId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weekday id"})
	}

	var req TimeslotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.EndHours*60+req.EndMinutes <= req.StartHours*60+req.StartMinutes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time"})
	}

	var weekday models.Weekday
	if err := database.DB.First(&weekday, "id = ?", weekdayID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Weekday not found"})
	}

	timeslot := models.Timeslot{
		WeekdayID:    weekday.ID,
		StartHours:   req.StartHours,
		StartMinutes: req.StartMinutes,
		EndHours:     req.EndHours,
		EndMinutes:   req.EndMinutes,
		Capacity:     req.Capacity,
	}
	if err := database.DB.Create(&timeslot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create timeslot"})
	}
	return c.Status(fiber.StatusCreated).JSON(timeslot)
}

func DeleteTimeslot(c *fiber.Ctx) error {
	timeslotID, err := uuid.Parse(c.Params("timeslotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid timeslot id"})
	}
	result := database.DB.Delete(&models.Timeslot{}, "id = ?", timeslotID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete timeslot"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Timeslot not found"})
	}
	return c.JSON(fiber.Map{"message": "Timeslot deleted."})
}
