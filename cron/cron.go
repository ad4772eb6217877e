package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/utils"
)

// StartCronJobs initializes and starts the cron scheduler for session
// reminders and expired-hold cleanup
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to check for sessions in the next hour
	_, err := c.AddFunc("* * * * *", sendSessionReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}
	// Clear stale checkout holds every 5 minutes
	_, err = c.AddFunc("*/5 * * * *", releaseExpiredHolds)
	if err != nil {
		log.Fatalf("Failed to add hold cleanup cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started")
}

// sendSessionReminders emails both parties of sessions starting in roughly
// one hour. reminder_sent_at keeps re-runs from mailing twice.
func sendSessionReminders() {
	var sessions []models.MentoringSession
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Mentor").Preload("Mentee").
		Where("status = ? AND date BETWEEN ? AND ? AND reminder_sent_at IS NULL",
			models.StatusConfirmed, startWindow, endWindow).
		Find(&sessions).Error
	if err != nil {
		log.Printf("Error fetching sessions for reminders: %v", err)
		return
	}

	for _, session := range sessions {
		if err := sendReminderEmail(&session); err != nil {
			log.Printf("Failed to send reminder for session %s: %v", session.ID, err)
			continue
		}
		if err := db.DB.Model(&session).Update("reminder_sent_at", now).Error; err != nil {
			log.Printf("Failed to mark reminder sent for session %s: %v", session.ID, err)
			continue
		}
		log.Printf("Sent reminder for session %s to %s", session.ID, session.Mentee.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email to both parties
func sendReminderEmail(session *models.MentoringSession) error {
	subject := fmt.Sprintf("Reminder: Mentoring Session - %s", session.Topic)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your mentoring session starting in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Topic:</strong> %s</li>
			<li><strong>Mentor:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
			<li><strong>Meeting Link:</strong> <a href="%s">%s</a></li>
		</ul>
		<p>Please join on time. If you need to cancel, do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Mentoring Team</p>
	`, session.Mentee.Name, session.Topic, session.Mentor.Name,
		utils.ToJST(session.Date).Format("2006-01-02 15:04"),
		session.Duration, session.MeetingURL, session.MeetingURL)

	if err := utils.SendEmail(session.Mentee.Email, subject, body); err != nil {
		return err
	}
	return utils.SendEmail(session.Mentor.Email, subject, body)
}

// releaseExpiredHolds clears advisory checkout holds that ran out. Holds
// never block the booking CAS, so this is purely presentational hygiene.
func releaseExpiredHolds() {
	res := db.DB.Model(&models.AvailabilitySlot{}).
		Where("hold_expires_at IS NOT NULL AND hold_expires_at < ? AND is_booked = ?", time.Now(), false).
		Update("hold_expires_at", nil)
	if res.Error != nil {
		log.Printf("Error releasing expired slot holds: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Released %d expired slot holds", res.RowsAffected)
	}
}
