package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/users/controller"
	"coachingku_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	g := api.Group("/auth", middlewares.RateLimiter(20, time.Minute))
	g.Post("/login", ctrl.AdminLogin)
	g.Post("/student-login", ctrl.StudentLogin)
}
