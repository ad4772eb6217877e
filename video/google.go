package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/models"
)

// GoogleMeetProvider creates a calendar event with a Meet conference link,
// using the OAuth token the mentor stored when linking their account. If the
// mentor has no linked account, or the calendar call fails, it returns a
// clearly-marked fallback URL instead of an error so booking never fails on
// a missing integration.
type GoogleMeetProvider struct{}

const googleFallbackURL = "https://meet.google.com/error-no-integration"

func (GoogleMeetProvider) GenerateLink(tx *gorm.DB, s Session) (string, error) {
	if tx == nil {
		return googleFallbackURL, nil
	}

	var integration models.UserIntegration
	err := tx.Where("user_id = ? AND provider = ?", s.MentorID, "google").
		First(&integration).Error
	if err != nil {
		return googleFallbackURL, nil
	}

	url, err := createMeetEvent(integration, s)
	if err != nil {
		log.Printf("google meet link for session %s failed, using fallback: %v", s.ID, err)
		return googleFallbackURL, nil
	}
	return url, nil
}

func createMeetEvent(integration models.UserIntegration, s Session) (string, error) {
	conf := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Endpoint:     googleoauth.Endpoint,
		Scopes:       []string{calendar.CalendarEventsScope},
	}

	token := &oauth2.Token{
		AccessToken:  integration.AccessToken,
		RefreshToken: integration.RefreshToken,
		Expiry:       integration.ExpiresAt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc, err := calendar.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("calendar service: %w", err)
	}

	end := s.Start.Add(time.Duration(s.Duration) * time.Minute)
	event := &calendar.Event{
		Summary: fmt.Sprintf("Mentoring: %s", s.Topic),
		Start:   &calendar.EventDateTime{DateTime: s.Start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: s.ID,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := svc.Events.Insert("primary", event).ConferenceDataVersion(1).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}
	if created.HangoutLink == "" {
		return "", fmt.Errorf("calendar event %s has no meet link", created.Id)
	}
	return created.HangoutLink, nil
}
