package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itcomdev/mentoring-app/controllers"
	"github.com/itcomdev/mentoring-app/middleware"
)

// SetupPermissionRoutes configures role and permission management routes
func SetupPermissionRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected())

	// Roles
	admin.Post("/roles", middleware.RequireRole("admin"), controllers.CreateRole)
	admin.Get("/roles", middleware.RequirePermission("roles", "read"), controllers.GetRoles)

	// Permissions
	admin.Post("/permissions", middleware.RequireRole("admin"), controllers.CreatePermission)
	admin.Get("/permissions", middleware.RequirePermission("permissions", "read"), controllers.GetPermissions)

	// Assignments
	admin.Post("/assign-role", middleware.RequireRole("admin"), controllers.AssignRoleToUser)
	admin.Post("/assign-permission", middleware.RequireRole("admin"), controllers.AssignPermissionToRole)
}
