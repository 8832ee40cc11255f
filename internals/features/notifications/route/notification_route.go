package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/notifications/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	g := api.Group("/notifications", authmw.Required())
	g.Get("/", authmw.StudentOrAdmin(), ctrl.List)
	g.Patch("/read-all", authmw.StudentOrAdmin(), ctrl.MarkAllRead)
	g.Patch("/:id/read", authmw.StudentOrAdmin(), ctrl.MarkRead)
	g.Post("/", authmw.AdminOnly(), ctrl.Create)
}
