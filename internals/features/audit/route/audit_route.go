package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/audit/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func AuditRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuditLogController(db)

	g := api.Group("/audit-logs", authmw.Required(), authmw.AdminOnly())
	g.Get("/", ctrl.List)
}
