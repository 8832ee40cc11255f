package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/settings/controller"
	authmw "coachingku_backend/internals/middlewares/auth"
)

func SettingsRoutes(app *fiber.App, api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSettingsController(db)

	// manifest is public, served from the app root
	app.Get("/manifest.json", ctrl.Manifest)

	g := api.Group("/settings")
	g.Get("/", ctrl.Get)
	g.Put("/", authmw.Required(), authmw.AdminOnly(), ctrl.Update)
	g.Post("/reload", authmw.Required(), authmw.AdminOnly(), ctrl.Reload)
}
