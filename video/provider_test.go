package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itcomdev/mentoring-app/models"
)

func TestJitsiLinkIsDerivedFromSessionID(t *testing.T) {
	s := Session{ID: "4f9c1a2e-0000-0000-0000-000000000001"}

	url, err := JitsiProvider{}.GenerateLink(nil, s)

	assert.NoError(t, err)
	assert.Equal(t, "https://meet.jit.si/itcom-session-4f9c1a2e-0000-0000-0000-000000000001", url)
}

func TestZoomLinkIsDerivedFromSessionID(t *testing.T) {
	s := Session{ID: "abc"}

	url, err := ZoomProvider{}.GenerateLink(nil, s)

	assert.NoError(t, err)
	assert.Equal(t, "https://zoom.us/j/itcom-session-abc", url)
}

func TestManualProviderUsesConfiguredURL(t *testing.T) {
	url, err := ManualProvider{URL: "https://example.com/my-room"}.GenerateLink(nil, Session{})

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/my-room", url)
}

func TestManualProviderWithoutURLReturnsPlaceholder(t *testing.T) {
	url, err := ManualProvider{}.GenerateLink(nil, Session{})

	assert.NoError(t, err)
	assert.Equal(t, "#", url)
}

func TestForPreferenceSelection(t *testing.T) {
	assert.IsType(t, JitsiProvider{}, ForPreference(models.ProviderJitsi, ""))
	assert.IsType(t, GoogleMeetProvider{}, ForPreference(models.ProviderGoogle, ""))
	assert.IsType(t, ZoomProvider{}, ForPreference(models.ProviderZoom, ""))
	assert.IsType(t, ManualProvider{}, ForPreference(models.ProviderManual, "https://example.com"))
}

func TestForPreferenceFallsBackToJitsi(t *testing.T) {
	assert.IsType(t, JitsiProvider{}, ForPreference("", ""))
	assert.IsType(t, JitsiProvider{}, ForPreference("webex", ""))
}

func TestGoogleWithoutIntegrationReturnsFallback(t *testing.T) {
	s := Session{ID: "deadbeef", MentorID: 7}

	url, err := GoogleMeetProvider{}.GenerateLink(nil, s)

	assert.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/error-no-integration", url)
}

func TestGenerateLinkNeverReturnsEmpty(t *testing.T) {
	s := Session{ID: "deadbeef"}

	prefs := []string{
		models.ProviderJitsi,
		models.ProviderGoogle,
		models.ProviderZoom,
		models.ProviderManual,
		"",
		"unknown",
	}
	for _, pref := range prefs {
		url := GenerateLink(nil, pref, s, "")
		assert.NotEmpty(t, url, "preference %q produced an empty link", pref)
	}
}

// A mentor who prefers Google Meet but never linked an account still gets a
// booking with a usable, clearly-marked meeting URL.
func TestGenerateLinkGooglePreferenceWithoutAccount(t *testing.T) {
	url := GenerateLink(nil, models.ProviderGoogle, Session{ID: "deadbeef", MentorID: 7}, "")

	assert.Equal(t, "https://meet.google.com/error-no-integration", url)
}

func TestGenerateLinkDeterministicForSameSession(t *testing.T) {
	s := Session{ID: "deadbeef"}

	first := GenerateLink(nil, models.ProviderJitsi, s, "")
	second := GenerateLink(nil, models.ProviderJitsi, s, "")

	assert.Equal(t, first, second)
}
