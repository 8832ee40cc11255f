package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/school/tests/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func TestRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(db)

	g := api.Group("/tests", authmw.Required())
	g.Get("/", authmw.StudentOrAdmin(), ctrl.List)
	g.Get("/:id", authmw.StudentOrAdmin(), ctrl.GetByID)
	g.Post("/", authmw.AdminOnly(), ctrl.Create)
	g.Put("/:id", authmw.AdminOnly(), ctrl.Update)
	g.Post("/:id/cancel", authmw.AdminOnly(), ctrl.Cancel)
	g.Post("/:id/reschedule", authmw.AdminOnly(), ctrl.Reschedule)
	g.Delete("/:id", authmw.AdminOnly(), ctrl.Delete)
}
