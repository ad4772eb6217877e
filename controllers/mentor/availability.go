package mentor

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/redis"
	"github.com/itcomdev/mentoring-app/scheduling"
)

// UpdateAvailability replaces the mentor's weekly recurrence template and
// regenerates the bookable slot grid.
func UpdateAvailability(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var input struct {
		Rules []scheduling.RuleInput `json:"rules"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := scheduling.ReplaceRules(db.DB, mentorID, input.Rules, time.Now()); err != nil {
		switch {
		case errors.Is(err, scheduling.ErrInvalidDayOfWeek),
			errors.Is(err, scheduling.ErrInvalidClock),
			errors.Is(err, scheduling.ErrInvalidTimeRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update availability",
			})
		}
	}

	redis.InvalidateSlots(mentorID)

	var rules []models.AvailabilityRule
	if err := db.DB.Where("mentor_id = ?", mentorID).
		Order("day_of_week, start_time").
		Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Availability updated successfully",
		"rules":   rules,
	})
}

// GetAvailability returns the mentor's own weekly template.
func GetAvailability(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var rules []models.AvailabilityRule
	if err := db.DB.Where("mentor_id = ?", mentorID).
		Order("day_of_week, start_time").
		Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}

	return c.JSON(rules)
}

// GetMySlots returns the mentor's own upcoming slots, booked ones included,
// so the dashboard can show the full grid.
func GetMySlots(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var slots []models.AvailabilitySlot
	if err := db.DB.
		Where("mentor_id = ? AND start_time >= ?", mentorID, time.Now()).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch slots",
		})
	}

	return c.JSON(slots)
}
