package mentor

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/redis"
)

// GetUpcomingSessions lists the mentor's confirmed sessions, optionally
// filtered by period (today, tomorrow, week, month).
func GetUpcomingSessions(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)
	filter := c.Query("filter", "")

	now := time.Now()
	query := db.DB.
		Where("mentor_id = ? AND status = ?", mentorID, models.StatusConfirmed).
		Preload("Mentee")

	switch filter {
	case "today":
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		query = query.Where("date BETWEEN ? AND ?", now, endOfDay)
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startOfDay := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, now.Location())
		query = query.Where("date BETWEEN ? AND ?", startOfDay, endOfDay)
	case "week":
		query = query.Where("date BETWEEN ? AND ?", now, now.AddDate(0, 0, 7))
	case "month":
		query = query.Where("date BETWEEN ? AND ?", now, now.AddDate(0, 1, 0))
	default:
		query = query.Where("date >= ?", now)
	}

	var sessions []models.MentoringSession
	if err := query.Order("date ASC").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	return c.JSON(sessions)
}

// GetSessionHistory lists the mentor's past sessions, newest first.
func GetSessionHistory(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var sessions []models.MentoringSession
	if err := db.DB.
		Where("mentor_id = ? AND (date < ? OR status IN ?)",
			mentorID, time.Now(), []models.SessionStatus{models.StatusCompleted, models.StatusCanceled}).
		Preload("Mentee").
		Order("date DESC").
		Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	return c.JSON(sessions)
}

// UpdateSessionStatus completes or cancels one of the mentor's sessions.
// Canceling releases the reserved slot so it becomes bookable again.
func UpdateSessionStatus(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)
	sessionID := c.Params("id")

	var input struct {
		Status models.SessionStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var session models.MentoringSession
	if err := db.DB.First(&session, "id = ? AND mentor_id = ?", sessionID, mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := session.UpdateStatus(tx, input.Status); err != nil {
			return err
		}

		if input.Status == models.StatusCanceled {
			return tx.Model(&models.AvailabilitySlot{}).
				Where("booking_id = ?", session.ID).
				Updates(map[string]interface{}{
					"is_booked":  false,
					"booking_id": nil,
					"version":    gorm.Expr("version + 1"),
				}).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if input.Status == models.StatusCanceled {
		redis.InvalidateSlots(mentorID)
	}

	return c.JSON(session)
}
