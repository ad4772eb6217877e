package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/controllers/mentor"
	"github.com/itcomdev/mentoring-app/middleware"
)

// SetupMentorRoutes configures the mentor dashboard routes
func SetupMentorRoutes(app *fiber.App) {
	m := app.Group("/mentor", middleware.Protected(), middleware.RequireRole("mentor"))

	// Weekly availability template and the generated slot grid
	m.Get("/availability", mentor.GetAvailability)
	m.Put("/availability", middleware.RequirePermission("availability", "update"), mentor.UpdateAvailability)
	m.Get("/slots", mentor.GetMySlots)

	// Profile
	m.Get("/profile", mentor.GetProfile)
	m.Put("/profile", mentor.UpdateProfile)
	m.Put("/profile/picture", mentor.UpdateProfilePicture)

	// Sessions
	m.Get("/sessions/upcoming", mentor.GetUpcomingSessions)
	m.Get("/sessions/history", mentor.GetSessionHistory)
	m.Patch("/sessions/:id/status", middleware.RequirePermission("sessions", "update"), mentor.UpdateSessionStatus)
}
