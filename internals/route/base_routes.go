package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/realtime"
	helper "coachingku_backend/internals/helpers"
)

var startedAt = time.Now()

// BaseRoutes are the unauthenticated root endpoints.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.Success(c, "Coachingku API", fiber.Map{
			"uptime": time.Since(startedAt).Round(time.Second).String(),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		sqlDB, err := db.DB()
		if err != nil {
			dbStatus = "error"
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = "error"
		}

		status := fiber.StatusOK
		if dbStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":     dbStatus,
			"uptime":     time.Since(startedAt).Round(time.Second).String(),
			"ws_clients": realtime.Default.ClientCount(),
		})
	})
}
