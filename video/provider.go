package video

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/models"
)

// Session carries the fields a provider may derive a link from.
type Session struct {
	ID       string
	Topic    string
	MentorID uint
	Start    time.Time
	Duration int // minutes
}

// Provider produces a meeting URL for a session. Implementations must be
// fallback-friendly: a missing integration yields a marked fallback URL, not
// an error that could fail a booking.
type Provider interface {
	GenerateLink(tx *gorm.DB, s Session) (string, error)
}

// JitsiProvider derives a room URL from the session id. No external call,
// always succeeds — which is why it is the default.
type JitsiProvider struct{}

func (JitsiProvider) GenerateLink(_ *gorm.DB, s Session) (string, error) {
	return fmt.Sprintf("https://meet.jit.si/itcom-session-%s", s.ID), nil
}

// ZoomProvider has no API wiring yet; it emits a deterministic placeholder
// room so booking keeps working for mentors who prefer Zoom.
type ZoomProvider struct{}

func (ZoomProvider) GenerateLink(_ *gorm.DB, s Session) (string, error) {
	return fmt.Sprintf("https://zoom.us/j/itcom-session-%s", s.ID), nil
}

// ManualProvider returns whatever URL the mentor configured.
type ManualProvider struct {
	URL string
}

func (p ManualProvider) GenerateLink(_ *gorm.DB, _ Session) (string, error) {
	if p.URL == "" {
		return "#", nil
	}
	return p.URL, nil
}

// ForPreference maps the mentor's stored preference onto a provider.
// Unknown or empty preferences fall back to Jitsi.
func ForPreference(preference, manualURL string) Provider {
	switch preference {
	case models.ProviderGoogle:
		return GoogleMeetProvider{}
	case models.ProviderZoom:
		return ZoomProvider{}
	case models.ProviderManual:
		return ManualProvider{URL: manualURL}
	default:
		return JitsiProvider{}
	}
}

// GenerateLink resolves the mentor's preferred provider and returns a
// meeting URL. It never fails: any provider error degrades to the Jitsi
// room, so a booking always gets some link.
func GenerateLink(tx *gorm.DB, preference string, s Session, manualURL string) string {
	url, err := ForPreference(preference, manualURL).GenerateLink(tx, s)
	if err != nil || url == "" {
		url, _ = JitsiProvider{}.GenerateLink(tx, s)
	}
	return url
}
