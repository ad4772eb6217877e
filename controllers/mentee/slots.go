package mentee

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/booking"
	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/redis"
	"github.com/itcomdev/mentoring-app/scheduling"
)

// holdTTL is how long a checkout hold keeps a slot flagged in the UI.
const holdTTL = 5 * time.Minute

// parseSlotRange resolves a listing window from the query parameters.
// Defaults to [now, now + the compiled grid horizon); "from" never reaches
// into the past.
func parseSlotRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	from := now
	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be RFC3339")
		}
		if parsed.After(from) {
			from = parsed
		}
	}

	to := from.AddDate(0, 0, scheduling.WindowDays)
	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be RFC3339")
		}
		to = parsed
	}

	return from, to, nil
}

// GetMentorSlots returns a mentor's open future slots, soonest first.
// Listings are cached briefly; the cache is dropped on booking and on
// availability changes, so a stale read only ever shows a slot that the
// booking transaction will reject anyway.
func GetMentorSlots(c *fiber.Ctx) error {
	mentorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mentor ID",
		})
	}

	from, to, err := parseSlotRange(c.Query("from"), c.Query("to"), time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Only full default listings hit the cache; ranged queries go to the DB.
	ranged := c.Query("from") != "" || c.Query("to") != ""
	if !ranged {
		if slots, ok := redis.GetCachedSlots(uint(mentorID)); ok {
			return c.JSON(fiber.Map{
				"slots":  slots,
				"cached": true,
			})
		}
	}

	var slots []models.AvailabilitySlot
	if err := db.DB.
		Where("mentor_id = ? AND is_booked = ? AND start_time >= ? AND start_time < ?",
			mentorID, false, from, to).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch slots",
		})
	}

	if !ranged {
		redis.CacheSlots(uint(mentorID), slots)
	}

	return c.JSON(fiber.Map{
		"slots":  slots,
		"cached": false,
	})
}

// HoldSlot places a short advisory hold on a slot while the mentee checks out.
func HoldSlot(c *fiber.Ctx) error {
	slotID := c.Params("id")

	err := booking.HoldSlot(db.DB, slotID, holdTTL)
	if err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
			})
		case errors.Is(err, booking.ErrSlotNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Slot not found",
			})
		case errors.Is(err, booking.ErrSlotConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "This slot is currently held or booked",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to hold slot",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":    "Slot held successfully",
		"expires_in": int(holdTTL.Seconds()),
	})
}
