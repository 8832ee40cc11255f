package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/push/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func PushRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPushController(db)

	g := api.Group("/push")
	g.Get("/public-key", ctrl.PublicKey)
	g.Post("/subscribe", authmw.Required(), authmw.StudentOrAdmin(), ctrl.Subscribe)
	g.Delete("/subscribe", authmw.Required(), authmw.StudentOrAdmin(), ctrl.Unsubscribe)
}
