package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/features/push/model"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

type PushController struct {
	DB *gorm.DB
}

func NewPushController(db *gorm.DB) *PushController {
	return &PushController{DB: db}
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// GET /api/push/public-key
func (ctrl *PushController) PublicKey(c *fiber.Ctx) error {
	key := configs.GetEnv("VAPID_PUBLIC_KEY")
	if key == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Push notifications are not configured")
	}
	return helper.Success(c, "VAPID public key", fiber.Map{"public_key": key})
}

// POST /api/push/subscribe
// Upsert by endpoint: a re-subscribe from the same browser replaces the keys
// and re-binds the owner.
func (ctrl *PushController) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	subjectID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	row := model.PushSubscriptionModel{
		PushSubscriptionEndpoint:  req.Endpoint,
		PushSubscriptionP256dh:    req.Keys.P256dh,
		PushSubscriptionAuth:      req.Keys.Auth,
		PushSubscriptionUserAgent: c.Get("User-Agent"),
	}
	if role == "student" {
		row.PushSubscriptionStudentId = &subjectID
	} else {
		row.PushSubscriptionUserId = &subjectID
	}

	err = ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "push_subscription_endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"push_subscription_p256dh",
			"push_subscription_auth",
			"push_subscription_student_id",
			"push_subscription_user_id",
			"push_subscription_user_agent",
		}),
	}).Create(&row).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save subscription")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Subscribed", nil)
}

// DELETE /api/push/subscribe
func (ctrl *PushController) Unsubscribe(c *fiber.Ctx) error {
	var req struct {
		Endpoint string `json:"endpoint" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil || req.Endpoint == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Endpoint required")
	}

	res := ctrl.DB.Delete(&model.PushSubscriptionModel{}, "push_subscription_endpoint = ?", req.Endpoint)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove subscription")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Subscription not found")
	}
	return helper.Success(c, "Unsubscribed", nil)
}
