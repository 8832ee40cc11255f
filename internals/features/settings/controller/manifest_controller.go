package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"coachingku_backend/internals/features/settings/service"
)

var validate = validator.New()

// staticManifest is served when settings are unavailable so installed PWAs
// never get a 500 from the manifest URL.
var staticManifest = fiber.Map{
	"name":             "Coaching Center",
	"short_name":       "Coaching",
	"start_url":        "/",
	"display":          "standalone",
	"theme_color":      "#1d4ed8",
	"background_color": "#ffffff",
	"icons":            []fiber.Map{},
}

// GET /manifest.json
func (ctrl *SettingsController) Manifest(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/manifest+json")

	snap, ok := service.Get()
	if !ok {
		return c.JSON(staticManifest)
	}

	icons := []fiber.Map{}
	if snap.Icon192Url != "" {
		icons = append(icons, fiber.Map{"src": snap.Icon192Url, "sizes": "192x192", "type": "image/png"})
	}
	if snap.Icon512Url != "" {
		icons = append(icons, fiber.Map{"src": snap.Icon512Url, "sizes": "512x512", "type": "image/png"})
	}

	shortName := snap.ShortName
	if shortName == "" {
		shortName = snap.Name
	}

	return c.JSON(fiber.Map{
		"name":             snap.Name,
		"short_name":       shortName,
		"start_url":        "/",
		"display":          "standalone",
		"theme_color":      snap.ThemeColor,
		"background_color": snap.BackgroundColor,
		"icons":            icons,
	})
}
