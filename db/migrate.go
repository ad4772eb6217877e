package db

import (
	"fmt"
	"log"

	"github.com/itcomdev/mentoring-app/models"
)

// Migrate runs AutoMigrate over the full model set and seeds the default
// roles. Called explicitly, never on every boot.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.MentorProfile{},
		&models.AvailabilityRule{},
		&models.AvailabilitySlot{},
		&models.MentoringSession{},
		&models.MentorReview{},
		&models.UserIntegration{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedDefaultRoles()
	seedDefaultPermissions()

	fmt.Println("✅ Migrations applied successfully!")
}

func seedDefaultRoles() {
	roles := []models.Role{
		{Name: "admin", Description: "Administrator with full access"},
		{Name: "mentor", Description: "Mentor who publishes availability and runs sessions"},
		{Name: "mentee", Description: "Mentee who books mentoring sessions"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}

// seedDefaultPermissions creates the permissions the route middleware checks
// and attaches them to the default roles. Admin gets every grant.
func seedDefaultPermissions() {
	grants := []struct {
		resource string
		action   string
		roles    []string
	}{
		{"roles", "read", nil},
		{"permissions", "read", nil},
		{"availability", "update", []string{"mentor"}},
		{"sessions", "update", []string{"mentor"}},
		{"bookings", "create", []string{"mentee"}},
		{"reviews", "create", []string{"mentee"}},
	}

	for _, g := range grants {
		name := g.resource + ":" + g.action
		var perm models.Permission
		if DB.Where("name = ?", name).First(&perm).RowsAffected == 0 {
			perm = models.Permission{Name: name, Resource: g.resource, Action: g.action}
			if err := DB.Create(&perm).Error; err != nil {
				log.Printf("Failed to seed permission %s: %v", name, err)
				continue
			}
		}

		for _, roleName := range append(g.roles, "admin") {
			var role models.Role
			if DB.Where("name = ?", roleName).First(&role).RowsAffected == 0 {
				continue
			}
			if err := DB.Model(&role).Association("Permissions").Append(&perm); err != nil {
				log.Printf("Failed to grant %s to %s: %v", name, roleName, err)
			}
		}
	}
}
