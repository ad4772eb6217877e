package mentee

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/booking"
	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/notify"
	"github.com/itcomdev/mentoring-app/redis"
	"github.com/itcomdev/mentoring-app/utils"
)

// BookSession books a slot with a mentor. The price is derived from the
// mentor's hourly rate server-side; the client never sets it.
func BookSession(c *fiber.Ctx) error {
	menteeID := c.Locals("userID").(uint)

	var req struct {
		MentorID          uint     `json:"mentor_id"`
		SlotID            string   `json:"slot_id"`
		Duration          int      `json:"duration"`
		Topic             string   `json:"topic"`
		SharedDocumentIDs []string `json:"shared_document_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var profile models.MentorProfile
	if err := db.DB.Where("user_id = ?", req.MentorID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mentor not found",
		})
	}

	in := booking.Input{
		MentorID:          req.MentorID,
		SlotID:            req.SlotID,
		Duration:          req.Duration,
		Topic:             req.Topic,
		Price:             profile.HourlyRate * float64(req.Duration) / 60,
		SharedDocumentIDs: req.SharedDocumentIDs,
	}

	session, err := booking.BookSession(db.DB, menteeID, in)
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
		case errors.Is(err, booking.ErrMentorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Mentor not found",
			})
		case errors.Is(err, booking.ErrSlotConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "This time is no longer available. Please pick another slot.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to book session",
			})
		}
	}

	// The booking is committed; everything below is best-effort.
	redis.InvalidateSlots(req.MentorID)

	dispatcher := notify.EmailDispatcher{DB: db.DB}
	when := utils.ToJST(session.Date).Format("2006-01-02 15:04")

	go notify.DispatchAsync(dispatcher, notify.EventNewBooking, session.MentorID, notify.Payload{
		Title: "New mentoring session booked",
		Body:  fmt.Sprintf("A mentee booked a session on %q for %s (JST).", session.Topic, when),
		URL:   "/mentor/sessions/" + session.ID,
	}, map[string]string{"session_id": session.ID})

	go notify.DispatchAsync(dispatcher, notify.EventNewBooking, session.MenteeID, notify.Payload{
		Title: "Your mentoring session is confirmed",
		Body:  fmt.Sprintf("Your session on %q is confirmed for %s (JST).", session.Topic, when),
		URL:   session.MeetingURL,
	}, map[string]string{"session_id": session.ID})

	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetMySessions lists the mentee's sessions, soonest upcoming first.
func GetMySessions(c *fiber.Ctx) error {
	menteeID := c.Locals("userID").(uint)

	var sessions []models.MentoringSession
	if err := db.DB.
		Where("mentee_id = ?", menteeID).
		Preload("Mentor").
		Order("date ASC").
		Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	for i := range sessions {
		sessions[i].Mentor.Password = ""
	}

	return c.JSON(sessions)
}
