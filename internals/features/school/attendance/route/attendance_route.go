package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/school/attendance/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	g := api.Group("/attendance", authmw.Required())
	g.Post("/bulk", authmw.AdminOnly(), ctrl.BulkMark)
	g.Get("/", authmw.AdminOnly(), ctrl.List)
	g.Get("/test/:testId", authmw.AdminOnly(), ctrl.TestSheet)
	g.Get("/student/:studentId", authmw.StudentOrAdmin(), ctrl.StudentHistory)
	g.Delete("/:id", authmw.AdminOnly(), ctrl.Delete)
}
