package mentor

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
	"github.com/itcomdev/mentoring-app/utils"
)

// GetProfile returns the mentor's own profile.
func GetProfile(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var profile models.MentorProfile
	if err := db.DB.Where("user_id = ?", mentorID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mentor profile not found",
		})
	}

	return c.JSON(profile)
}

// UpdateProfile updates the mentor's profile fields. Rating fields are
// owned by the review flow and never accepted here.
func UpdateProfile(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var profile models.MentorProfile
	if err := db.DB.Where("user_id = ?", mentorID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mentor profile not found",
		})
	}

	var input struct {
		Company                *string  `json:"company"`
		JobTitle               *string  `json:"job_title"`
		YearsOfExperience      *int     `json:"years_of_experience"`
		Bio                    *string  `json:"bio"`
		HourlyRate             *float64 `json:"hourly_rate"`
		Currency               *string  `json:"currency"`
		PreferredVideoProvider *string  `json:"preferred_video_provider"`
		ManualMeetingURL       *string  `json:"manual_meeting_url"`
		IsActive               *bool    `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.PreferredVideoProvider != nil {
		switch *input.PreferredVideoProvider {
		case models.ProviderJitsi, models.ProviderGoogle, models.ProviderZoom, models.ProviderManual:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid video provider",
			})
		}
	}
	if input.HourlyRate != nil && *input.HourlyRate < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Hourly rate must not be negative",
		})
	}

	if input.Company != nil {
		profile.Company = *input.Company
	}
	if input.JobTitle != nil {
		profile.JobTitle = *input.JobTitle
	}
	if input.YearsOfExperience != nil {
		profile.YearsOfExperience = *input.YearsOfExperience
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.HourlyRate != nil {
		profile.HourlyRate = *input.HourlyRate
	}
	if input.Currency != nil {
		profile.Currency = *input.Currency
	}
	if input.PreferredVideoProvider != nil {
		profile.PreferredVideoProvider = *input.PreferredVideoProvider
	}
	if input.ManualMeetingURL != nil {
		profile.ManualMeetingURL = *input.ManualMeetingURL
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(profile)
}

// UpdateProfilePicture uploads a new picture to Cloudinary and stores the URL.
func UpdateProfilePicture(c *fiber.Ctx) error {
	mentorID := c.Locals("userID").(uint)

	var profile models.MentorProfile
	if err := db.DB.Where("user_id = ?", mentorID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mentor profile not found",
		})
	}

	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("mentor_%d", mentorID)
	url, err := utils.UploadToCloudinary(file, publicID, "mentor_profiles")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload profile picture",
		})
	}

	profile.ProfilePicture = url
	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile picture",
		})
	}

	return c.JSON(fiber.Map{
		"message":         "Profile picture updated successfully",
		"profile_picture": url,
	})
}
