package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/video"
)

// Input is a mentee's booking request. Price is computed by the caller
// (hourly rate x duration/60) and passed through untouched.
type Input struct {
	MentorID          uint     `json:"mentor_id"`
	SlotID            string   `json:"slot_id"`
	Duration          int      `json:"duration"` // minutes
	Topic             string   `json:"topic"`
	Price             float64  `json:"price"`
	SharedDocumentIDs []string `json:"shared_document_ids"`
}

// Validate runs before the transaction opens; validation failures are never
// retried.
func (in Input) Validate() error {
	if in.MentorID == 0 {
		return &ValidationError{Field: "mentor_id", Reason: "required"}
	}
	if _, err := uuid.Parse(in.SlotID); err != nil {
		return &ValidationError{Field: "slot_id", Reason: "must be a UUID"}
	}
	if in.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if in.Topic == "" {
		return &ValidationError{Field: "topic", Reason: "required"}
	}
	if in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

// BookSession reserves the slot and creates the session atomically.
//
// Many mentees may race for the same slot; at most one wins. The mutual
// exclusion is the guarded update below (is_booked must still be false at
// write time), re-verified with a re-read so the check does not depend on
// the driver reporting affected-row counts. Everything — session insert,
// slot update, verification — either commits together or rolls back
// together. Notification dispatch happens after commit, in the caller.
func BookSession(db *gorm.DB, menteeID uint, in Input) (*models.MentoringSession, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var session models.MentoringSession

	err := db.Transaction(func(tx *gorm.DB) error {
		var slot models.AvailabilitySlot
		if err := tx.First(&slot, "id = ?", in.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("read slot: %w", err)
		}
		if slot.MentorID != in.MentorID {
			return ErrSlotNotFound
		}

		// Fast path: no point writing a session that cannot be linked.
		if slot.IsBooked {
			return ErrSlotConflict
		}

		var mentor models.User
		if err := tx.Preload("MentorProfile").First(&mentor, in.MentorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMentorNotFound
			}
			return fmt.Errorf("read mentor: %w", err)
		}

		// The session id is generated up front so the meeting link can be
		// derived from it deterministically.
		sessionID := uuid.NewString()

		var preference, manualURL string
		if mentor.MentorProfile != nil {
			preference = mentor.MentorProfile.PreferredVideoProvider
			manualURL = mentor.MentorProfile.ManualMeetingURL
		}
		meetingURL := video.GenerateLink(tx, preference, video.Session{
			ID:       sessionID,
			Topic:    in.Topic,
			MentorID: in.MentorID,
			Start:    slot.StartTime,
			Duration: in.Duration,
		}, manualURL)

		session = models.MentoringSession{
			ID:                sessionID,
			MentorID:          in.MentorID,
			MenteeID:          menteeID,
			Topic:             in.Topic,
			Date:              slot.StartTime,
			Duration:          in.Duration,
			Price:             in.Price,
			Currency:          currencyFor(mentor.MentorProfile),
			Status:            models.StatusConfirmed,
			MeetingURL:        meetingURL,
			SharedDocumentIDs: models.DocumentIDs(in.SharedDocumentIDs),
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		// The actual mutual exclusion: a compare-and-swap expressed as a
		// guarded update. version rides along so every reservation bumps it.
		res := tx.Model(&models.AvailabilitySlot{}).
			Where("id = ? AND is_booked = ?", slot.ID, false).
			Updates(map[string]interface{}{
				"is_booked":  true,
				"booking_id": sessionID,
				"version":    gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("reserve slot: %w", res.Error)
		}

		// Re-read instead of trusting RowsAffected: not every backend
		// reports it reliably, and under snapshot isolation this catches
		// write skew. A mismatch means another transaction won the race.
		var check models.AvailabilitySlot
		if err := tx.First(&check, "id = ?", slot.ID).Error; err != nil {
			return fmt.Errorf("verify slot: %w", err)
		}
		if check.BookingID == nil || *check.BookingID != sessionID {
			return ErrSlotConflict
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func currencyFor(profile *models.MentorProfile) string {
	if profile != nil && profile.Currency != "" {
		return profile.Currency
	}
	return "USD"
}

// HoldSlot places a short advisory hold on a free slot so the UI can show it
// as "in checkout". Holds never gate the booking compare-and-swap — the slot
// row carries no holder identity — and the cron job clears expired ones.
func HoldSlot(db *gorm.DB, slotID string, ttl time.Duration) error {
	if _, err := uuid.Parse(slotID); err != nil {
		return &ValidationError{Field: "slot_id", Reason: "must be a UUID"}
	}

	now := time.Now()
	expires := now.Add(ttl)

	res := db.Model(&models.AvailabilitySlot{}).
		Where("id = ? AND is_booked = ? AND (hold_expires_at IS NULL OR hold_expires_at < ?)",
			slotID, false, now).
		Update("hold_expires_at", expires)
	if res.Error != nil {
		return fmt.Errorf("hold slot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var slot models.AvailabilitySlot
		if err := db.First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("read slot: %w", err)
		}
		return ErrSlotConflict
	}
	return nil
}
