package models

import (
	"time"
)

type User struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	Name           string             `json:"name"`
	Email          string             `json:"email" gorm:"unique"`
	Password       string             `json:"password,omitempty"`
	RoleID         uint               `json:"role_id"`
	Role           Role               `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	MentorProfile  *MentorProfile     `json:"mentor_profile,omitempty" gorm:"foreignKey:UserID"`
	Availability   []AvailabilityRule `json:"availability,omitempty" gorm:"foreignKey:MentorID"`
	MentorSessions []MentoringSession `json:"mentor_sessions,omitempty" gorm:"foreignKey:MentorID"`
	MenteeSessions []MentoringSession `json:"mentee_sessions,omitempty" gorm:"foreignKey:MenteeID"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
