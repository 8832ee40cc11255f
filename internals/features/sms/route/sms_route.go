package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/sms/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
	"coachingku_backend/internals/middlewares"
)

func SmsRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSmsController(db)

	g := api.Group("/sms", authmw.Required(), authmw.AdminOnly())
	g.Post("/send-result", middlewares.RateLimiter(10, time.Minute), ctrl.SendResultSms)
	g.Post("/send-custom", middlewares.RateLimiter(10, time.Minute), ctrl.SendCustomSms)
	g.Get("/logs", ctrl.ListLogs)
	g.Get("/stats", ctrl.Stats)
	g.Get("/balance", ctrl.Balance)
}
