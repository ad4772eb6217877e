package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/controllers/mentee"
	"github.com/itcomdev/mentoring-app/middleware"
)

// SetupMenteeRoutes configures mentor discovery and booking routes
func SetupMenteeRoutes(app *fiber.App) {
	// Public discovery
	mentors := app.Group("/mentors")
	mentors.Get("/", mentee.ListMentors)
	mentors.Get("/:id", mentee.GetMentorDetails)
	mentors.Get("/:id/slots", mentee.GetMentorSlots)
	mentors.Get("/:id/reviews", mentee.GetMentorReviews)

	// Booking requires a signed-in mentee
	m := app.Group("/mentee", middleware.Protected())
	m.Post("/slots/:id/hold", mentee.HoldSlot)
	m.Post("/bookings", middleware.RequirePermission("bookings", "create"), mentee.BookSession)
	m.Get("/sessions", mentee.GetMySessions)
	m.Post("/reviews", middleware.RequirePermission("reviews", "create"), mentee.CreateReview)
}
