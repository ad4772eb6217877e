package models

import (
	"gorm.io/gorm"
)

// Video provider preferences stored on the mentor profile. "jitsi" is the
// default because it is the only provider with no external dependency.
const (
	ProviderJitsi  = "jitsi"
	ProviderGoogle = "google"
	ProviderZoom   = "zoom"
	ProviderManual = "manual"
)

type MentorProfile struct {
	gorm.Model
	UserID                 uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	User                   User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Company                string  `json:"company"`
	JobTitle               string  `json:"job_title"`
	YearsOfExperience      int     `json:"years_of_experience"`
	Bio                    string  `json:"bio"`
	HourlyRate             float64 `json:"hourly_rate"`
	Currency               string  `json:"currency" gorm:"default:USD"`
	PreferredVideoProvider string  `json:"preferred_video_provider" gorm:"default:jitsi"`
	ManualMeetingURL       string  `json:"manual_meeting_url"`
	ProfilePicture         string  `json:"profile_picture"`
	AverageRating          float64 `json:"average_rating" gorm:"default:0"`
	TotalReviews           int     `json:"total_reviews" gorm:"default:0"`
	IsActive               bool    `json:"is_active" gorm:"default:true"`
}
