package mentee

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
)

// CreateReview lets a mentee rate a mentor. A review linked to one of the
// mentee's completed sessions is marked verified. One review per mentor
// per mentee.
func CreateReview(c *fiber.Ctx) error {
	menteeID := c.Locals("userID").(uint)

	var input struct {
		MentorID  uint    `json:"mentor_id"`
		Rating    float64 `json:"rating"`
		Comment   string  `json:"comment"`
		SessionID *string `json:"session_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.MentorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Mentor ID is required",
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	var profile models.MentorProfile
	if err := db.DB.Where("user_id = ?", input.MentorID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mentor not found",
		})
	}

	review := models.MentorReview{
		Rating:    input.Rating,
		Comment:   input.Comment,
		MentorID:  input.MentorID,
		MenteeID:  menteeID,
		SessionID: input.SessionID,
	}

	exists, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing reviews",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this mentor",
		})
	}

	if input.SessionID != nil {
		var session models.MentoringSession
		err := db.DB.First(&session,
			"id = ? AND mentee_id = ? AND mentor_id = ? AND status = ?",
			*input.SessionID, menteeID, input.MentorID, models.StatusCompleted).Error
		if err == nil {
			review.IsVerified = true
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recalculateRating(tx, input.MentorID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetMentorReviews lists a mentor's reviews, newest first, paginated.
func GetMentorReviews(c *fiber.Ctx) error {
	mentorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mentor ID",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var total int64
	db.DB.Model(&models.MentorReview{}).Where("mentor_id = ?", mentorID).Count(&total)

	var reviews []models.MentorReview
	if err := db.DB.Preload("Mentee").
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}
	for i := range reviews {
		reviews[i].Mentee.Password = ""
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// recalculateRating refreshes the denormalized rating fields on the profile.
func recalculateRating(tx *gorm.DB, mentorID uint) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.MentorReview{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("mentor_id = ? AND deleted_at IS NULL", mentorID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.MentorProfile{}).
		Where("user_id = ?", mentorID).
		Updates(map[string]interface{}{
			"average_rating": stats.Avg,
			"total_reviews":  stats.Count,
		}).Error
}
