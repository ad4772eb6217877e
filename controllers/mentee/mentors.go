package mentee

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
)

// ListMentors returns active mentors with their profiles, paginated.
// Supports free-text search over name, company, and job title.
func ListMentors(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	search := c.Query("search", "")

	query := db.DB.Model(&models.MentorProfile{}).
		Where("is_active = ?", true).
		Joins("JOIN users ON users.id = mentor_profiles.user_id")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"users.name ILIKE ? OR mentor_profiles.company ILIKE ? OR mentor_profiles.job_title ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count mentors",
		})
	}

	var profiles []models.MentorProfile
	if err := query.
		Preload("User").
		Order("average_rating DESC, total_reviews DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch mentors",
		})
	}

	for i := range profiles {
		profiles[i].User.Password = ""
	}

	return c.JSON(fiber.Map{
		"mentors": profiles,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetMentorDetails returns one mentor's public profile with recent reviews.
func GetMentorDetails(c *fiber.Ctx) error {
	mentorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mentor ID",
		})
	}

	var profile models.MentorProfile
	if err := db.DB.Preload("User").
		Where("user_id = ? AND is_active = ?", mentorID, true).
		First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mentor not found",
		})
	}
	profile.User.Password = ""

	var reviews []models.MentorReview
	if err := db.DB.Preload("Mentee").
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Limit(10).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}
	for i := range reviews {
		reviews[i].Mentee.Password = ""
	}

	return c.JSON(fiber.Map{
		"mentor":  profile,
		"reviews": reviews,
	})
}
