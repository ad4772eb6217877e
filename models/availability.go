package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AvailabilityRule is one entry of a mentor's weekly recurrence template.
// The whole set is replaced when the mentor edits their schedule.
type AvailabilityRule struct {
	gorm.Model
	MentorID  uint      `json:"mentor_id" gorm:"index;not null"`
	Mentor    User      `json:"mentor,omitempty" gorm:"foreignKey:MentorID"`
	DayOfWeek DayOfWeek `json:"day_of_week"`
	StartTime string    `json:"start_time"` // "HH:MM", 24h wall clock
	EndTime   string    `json:"end_time"`   // "HH:MM", 24h wall clock
}

// AvailabilitySlot is one concrete 30-minute bookable window compiled from
// the mentor's rules. A slot can be booked exactly once; the transition to
// booked happens only through the guarded update in the booking package.
type AvailabilitySlot struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	MentorID      uint       `json:"mentor_id" gorm:"not null;uniqueIndex:idx_slot_mentor_start"`
	StartTime     time.Time  `json:"start_time" gorm:"not null;uniqueIndex:idx_slot_mentor_start"`
	EndTime       time.Time  `json:"end_time" gorm:"not null"`
	IsBooked      bool       `json:"is_booked" gorm:"not null;default:false"`
	BookingID     *string    `json:"booking_id" gorm:"type:uuid"`
	HoldExpiresAt *time.Time `json:"hold_expires_at"`
	Version       int        `json:"version" gorm:"not null;default:1"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (s *AvailabilitySlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
