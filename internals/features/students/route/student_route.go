package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/students/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func StudentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)

	g := api.Group("/students", authmw.Required())
	g.Get("/", authmw.AdminOnly(), ctrl.List)
	g.Get("/:id", authmw.StudentOrAdmin(), ctrl.GetByID)
	g.Post("/", authmw.AdminOnly(), ctrl.Create)
	g.Put("/:id", authmw.AdminOnly(), ctrl.Update)
	g.Delete("/:id", authmw.AdminOnly(), ctrl.Delete)
}
