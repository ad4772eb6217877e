package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusConfirmed SessionStatus = "confirmed"
	StatusCanceled  SessionStatus = "canceled"
	StatusCompleted SessionStatus = "completed"
)

// DocumentIDs holds opaque references into the document vault, stored as JSONB.
type DocumentIDs []string

// Value implements the driver.Valuer interface
func (d DocumentIDs) Value() (driver.Value, error) {
	if d == nil {
		d = DocumentIDs{}
	}
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *DocumentIDs) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal DocumentIDs: unsupported type %T", value)
	}

	return json.Unmarshal(data, d)
}

// MentoringSession is created exactly once per successful booking, inside the
// same transaction that reserves the slot. Immutable afterwards except for
// status transitions.
type MentoringSession struct {
	ID                string        `json:"id" gorm:"type:uuid;primaryKey"`
	MentorID          uint          `json:"mentor_id" gorm:"index;not null"`
	Mentor            User          `json:"mentor,omitempty" gorm:"foreignKey:MentorID"`
	MenteeID          uint          `json:"mentee_id" gorm:"index;not null"`
	Mentee            User          `json:"mentee,omitempty" gorm:"foreignKey:MenteeID"`
	Topic             string        `json:"topic"`
	Date              time.Time     `json:"date"`     // slot start time, denormalized
	Duration          int           `json:"duration"` // minutes, may exceed one slot
	Price             float64       `json:"price"`
	Currency          string        `json:"currency" gorm:"default:USD"`
	Status            SessionStatus `json:"status"`
	MeetingURL        string        `json:"meeting_url"`
	SharedDocumentIDs DocumentIDs   `json:"shared_document_ids" gorm:"type:jsonb"`
	ReminderSentAt    *time.Time    `json:"reminder_sent_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (m *MentoringSession) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = StatusConfirmed
	}
	return nil
}

// UpdateStatus enforces the session lifecycle. Cancellation and completion
// are driven by external lifecycle events.
func (m *MentoringSession) UpdateStatus(tx *gorm.DB, newStatus SessionStatus) error {
	switch m.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCanceled:
		return fmt.Errorf("no transitions allowed from %s", m.Status)
	}

	m.Status = newStatus
	return tx.Save(m).Error
}
