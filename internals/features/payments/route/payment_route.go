package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/payments/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	// gateway webhook stays outside auth
	api.Post("/payments/notification", ctrl.GatewayNotification)

	g := api.Group("/payments", authmw.Required())
	g.Post("/", authmw.AdminOnly(), ctrl.Record)
	g.Post("/online", authmw.StudentOrAdmin(), ctrl.InitiateOnline)
	g.Get("/", authmw.AdminOnly(), ctrl.List)
	g.Get("/student/:studentId", authmw.StudentOrAdmin(), ctrl.StudentLedger)
}
