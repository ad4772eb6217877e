package notify

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/utils"
)

const EventNewBooking = "mentoring.new_booking"

// Payload mirrors what the platform's push channel accepts.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// Dispatcher delivers a notification to a user. Delivery, retries, and
// channel selection live behind this interface; callers treat dispatch as
// best-effort and must never fail a committed booking over it.
type Dispatcher interface {
	Dispatch(event string, recipientID uint, payload Payload, metadata map[string]string) error
}

// EmailDispatcher delivers notifications over SMTP using the recipient's
// account email.
type EmailDispatcher struct {
	DB *gorm.DB
}

func (d EmailDispatcher) Dispatch(event string, recipientID uint, payload Payload, metadata map[string]string) error {
	var recipient models.User
	if err := d.DB.First(&recipient, recipientID).Error; err != nil {
		return fmt.Errorf("lookup recipient %d: %w", recipientID, err)
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<p><a href="%s">Open in the app</a></p>
		<p>Best regards,</p>
		<p>The Mentoring Team</p>
	`, recipient.Name, payload.Body, payload.URL)

	if err := utils.SendEmail(recipient.Email, payload.Title, body); err != nil {
		return fmt.Errorf("send %s to %s: %w", event, recipient.Email, err)
	}
	return nil
}

// DispatchAsync fires a notification and only logs failures.
func DispatchAsync(d Dispatcher, event string, recipientID uint, payload Payload, metadata map[string]string) {
	if d == nil {
		return
	}
	if err := d.Dispatch(event, recipientID, payload, metadata); err != nil {
		log.Printf("notification dispatch failed (event=%s recipient=%d): %v", event, recipientID, err)
	}
}
