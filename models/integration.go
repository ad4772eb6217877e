package models

import (
	"time"

	"gorm.io/gorm"
)

// UserIntegration stores an OAuth token pair for an external provider
// ("google", "zoom"). The video link resolver reads these; it never writes.
type UserIntegration struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index:idx_integration_user_provider,unique"`
	Provider     string    `json:"provider" gorm:"index:idx_integration_user_provider,unique"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
}
