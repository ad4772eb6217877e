package models

import (
	"gorm.io/gorm"
)

type MentorReview struct {
	gorm.Model
	Rating     float64           `json:"rating" gorm:"type:decimal(2,1);not null"`
	Comment    string            `json:"comment"`
	MentorID   uint              `json:"mentor_id"`
	Mentor     User              `json:"mentor" gorm:"foreignKey:MentorID"`
	MenteeID   uint              `json:"mentee_id"`
	Mentee     User              `json:"mentee" gorm:"foreignKey:MenteeID"`
	SessionID  *string           `json:"session_id" gorm:"type:uuid"` // optional link to a session
	Session    *MentoringSession `json:"session,omitempty" gorm:"foreignKey:SessionID"`
	IsVerified bool              `json:"is_verified" gorm:"default:false"` // linked to a completed session
}

// BeforeCreate hook to clamp rating into the 1.0–5.0 range
func (r *MentorReview) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1.0 {
		r.Rating = 1.0
	} else if r.Rating > 5.0 {
		r.Rating = 5.0
	}
	return nil
}

// HasExistingReview reports whether this mentee already reviewed the mentor.
func (r *MentorReview) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&MentorReview{}).
		Where("mentee_id = ? AND mentor_id = ? AND deleted_at IS NULL", r.MenteeID, r.MentorID).
		Count(&count).Error

	return count > 0, err
}
