package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/school/class_sessions/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func ClassSessionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassSessionController(db)

	g := api.Group("/class-sessions", authmw.Required())
	g.Get("/", authmw.StudentOrAdmin(), ctrl.List)
	g.Post("/", authmw.AdminOnly(), ctrl.Create)
	g.Post("/:id/cancel", authmw.AdminOnly(), ctrl.Cancel)
	g.Post("/:id/reschedule", authmw.AdminOnly(), ctrl.Reschedule)
	g.Delete("/:id", authmw.AdminOnly(), ctrl.Delete)
}
