package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/itcomdev/mentoring-app/cron"
	"github.com/itcomdev/mentoring-app/db"
	"github.com/itcomdev/mentoring-app/redis"
	"github.com/itcomdev/mentoring-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	}

	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Mentoring API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupPermissionRoutes(app)
	routes.SetupMentorRoutes(app)
	routes.SetupMenteeRoutes(app)

	app.Listen(":8000")
}
