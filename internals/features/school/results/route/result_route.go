package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/school/results/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func ResultRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResultController(db)

	g := api.Group("/results", authmw.Required())
	g.Post("/bulk", authmw.AdminOnly(), ctrl.BulkSave)
	g.Post("/publish/:testId", authmw.AdminOnly(), ctrl.Publish)
	g.Post("/sync", authmw.AdminOnly(), ctrl.Sync)
	g.Get("/can-enter/:testId", authmw.AdminOnly(), ctrl.CanEnter)
	g.Get("/statistics/:testId", authmw.AdminOnly(), ctrl.Statistics)
	g.Get("/merit-list/:testId", authmw.StudentOrAdmin(), ctrl.MeritList)
	g.Get("/student/:studentId", authmw.StudentOrAdmin(), ctrl.StudentHistory)
	g.Delete("/:id", authmw.AdminOnly(), ctrl.Delete)
}
