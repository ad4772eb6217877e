package middleware

import (
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
	))

	require.NoError(t, conn.Exec(
		"TRUNCATE role_permissions, permissions, roles, users RESTART IDENTITY CASCADE",
	).Error)

	return conn
}

func signToken(t *testing.T, secret string, userID uint, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func seedUserWithRole(t *testing.T, conn *gorm.DB, email, roleName string, perms []models.Permission) models.User {
	t.Helper()

	role := models.Role{Name: roleName}
	require.NoError(t, conn.Create(&role).Error)
	if len(perms) > 0 {
		require.NoError(t, conn.Model(&role).Association("Permissions").Append(&perms))
	}

	user := models.User{Name: roleName, Email: email, RoleID: role.ID}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func TestRequirePermission(t *testing.T) {
	conn := testDB(t)
	db.DB = conn

	secret := "permission-test-secret"
	t.Setenv("JWT_SECRET", secret)

	granted := seedUserWithRole(t, conn, "mentor@example.com", "mentor", []models.Permission{
		{Name: "availability:update", Resource: "availability", Action: "update"},
	})
	denied := seedUserWithRole(t, conn, "mentee@example.com", "mentee", nil)

	app := fiber.New()
	app.Put("/guarded", Protected(), RequirePermission("availability", "update"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	request := func(token string) int {
		req := httptest.NewRequest("PUT", "/guarded", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, request(signToken(t, secret, granted.ID, "mentor")))
	assert.Equal(t, fiber.StatusForbidden, request(signToken(t, secret, denied.ID, "mentee")))
	assert.Equal(t, fiber.StatusUnauthorized, request(""))
}

func TestRequireRole(t *testing.T) {
	conn := testDB(t)
	db.DB = conn

	secret := "role-test-secret"
	t.Setenv("JWT_SECRET", secret)

	mentor := seedUserWithRole(t, conn, "mentor@example.com", "mentor", nil)
	mentee := seedUserWithRole(t, conn, "mentee@example.com", "mentee", nil)
	admin := seedUserWithRole(t, conn, "admin@example.com", "admin", nil)

	app := fiber.New()
	app.Get("/mentor-only", Protected(), RequireRole("mentor"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	request := func(userID uint, role string) int {
		req := httptest.NewRequest("GET", "/mentor-only", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, userID, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, request(mentor.ID, "mentor"))
	assert.Equal(t, fiber.StatusForbidden, request(mentee.ID, "mentee"))

	// Admin passes any role gate.
	assert.Equal(t, fiber.StatusOK, request(admin.ID, "admin"))
}
