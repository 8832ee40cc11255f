package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	"coachingku_backend/internals/features/settings/service"
	helper "coachingku_backend/internals/helpers"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

type updateSettingsRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=120"`
	ShortName         *string `json:"short_name" validate:"omitempty,max=40"`
	ThemeColor        *string `json:"theme_color" validate:"omitempty,hexcolor"`
	BackgroundColor   *string `json:"background_color" validate:"omitempty,hexcolor"`
	Icon192Url        *string `json:"icon_192_url" validate:"omitempty,url"`
	Icon512Url        *string `json:"icon_512_url" validate:"omitempty,url"`
	WebsiteUrl        *string `json:"website_url" validate:"omitempty,url"`
	SmsEnabled        *bool   `json:"sms_enabled"`
	SmsApiKey         *string `json:"sms_api_key"`
	SmsSenderId       *string `json:"sms_sender_id" validate:"omitempty,max=20"`
	ResultSmsTemplate *string `json:"result_sms_template" validate:"omitempty,max=500"`
}

// GET /api/settings
func (ctrl *SettingsController) Get(c *fiber.Ctx) error {
	snap, ok := service.Get()
	if !ok {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Settings not loaded")
	}
	// API key stays server-side
	return helper.Success(c, "Settings fetched", fiber.Map{
		"name":                snap.Name,
		"short_name":          snap.ShortName,
		"theme_color":         snap.ThemeColor,
		"background_color":    snap.BackgroundColor,
		"icon_192_url":        snap.Icon192Url,
		"icon_512_url":        snap.Icon512Url,
		"website_url":         snap.WebsiteUrl,
		"sms_enabled":         snap.SmsEnabled,
		"sms_sender_id":       snap.SmsSenderId,
		"result_sms_template": snap.ResultSmsTemplate,
	})
}

// PUT /api/settings
func (ctrl *SettingsController) Update(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	changes := map[string]interface{}{}
	setIf := func(col string, v *string) {
		if v != nil {
			changes[col] = *v
		}
	}
	setIf("site_setting_name", req.Name)
	setIf("site_setting_short_name", req.ShortName)
	setIf("site_setting_theme_color", req.ThemeColor)
	setIf("site_setting_background_color", req.BackgroundColor)
	setIf("site_setting_icon_192_url", req.Icon192Url)
	setIf("site_setting_icon_512_url", req.Icon512Url)
	setIf("site_setting_website_url", req.WebsiteUrl)
	setIf("site_setting_sms_api_key", req.SmsApiKey)
	setIf("site_setting_sms_sender_id", req.SmsSenderId)
	setIf("site_setting_result_sms_template", req.ResultSmsTemplate)
	if req.SmsEnabled != nil {
		changes["site_setting_sms_enabled"] = *req.SmsEnabled
	}
	if len(changes) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := service.Update(ctrl.DB, changes); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update settings")
	}

	auditService.Record(ctrl.DB, c, "settings.update", "site_settings", "", map[string]interface{}{
		"fields": len(changes),
	})
	return ctrl.Get(c)
}

// POST /api/settings/reload
func (ctrl *SettingsController) Reload(c *fiber.Ctx) error {
	if err := service.Reload(ctrl.DB); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload settings")
	}
	return helper.Success(c, "Settings reloaded", nil)
}
