package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	"coachingku_backend/internals/constants"
	"coachingku_backend/internals/features/notifications/model"
	"coachingku_backend/internals/features/notifications/service"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

var notificationSortColumns = map[string]string{
	"notification_created_at": "notification_created_at",
	"notification_priority":   "notification_priority",
	"notification_type":       "notification_type",
}

type NotificationController struct {
	DB  *gorm.DB
	Svc *service.Service
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Svc: service.New(db)}
}

/* ===================== LIST (inbox) ===================== */

// recipientScope limits a notifications query to rows addressed to the
// caller: their id, their class (students), or everyone. Every read and
// mark-read path goes through this.
func recipientScope(q *gorm.DB, c *fiber.Ctx, role string, subjectID uuid.UUID) *gorm.DB {
	if role == "student" {
		class, _ := c.Locals("class").(string)
		section, _ := c.Locals("section").(string)
		return q.Where(
			`notification_student_id = ?
			 OR notification_recipient_type = 'all'
			 OR (notification_recipient_type = 'class' AND notification_class = ?
			     AND (notification_section = '' OR notification_section = ?))`,
			subjectID, class, section,
		)
	}
	return q.Where("notification_user_id = ? OR notification_recipient_type = 'all'", subjectID)
}

// GET /api/notifications
// Students see rows addressed to them, their class, or everyone. Admins see
// rows addressed to their user id or everyone.
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	subjectID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)
	p := helper.ParsePage(c, "notification_created_at", "desc")

	q := recipientScope(ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_is_scheduled = false"), c, role, subjectID)
	if unread := c.Query("unread"); unread == "true" {
		q = q.Where("notification_is_read = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.NotificationModel
	if err := q.Order(p.SafeOrderClause(notificationSortColumns, "notification_created_at")).Limit(p.PerPage).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Notifications fetched", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPageMeta(p, total),
	})
}

/* ===================== MARK READ ===================== */
// PATCH /api/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification id")
	}
	subjectID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	// Scoped lookup: a caller can only mark their own inbox rows. Rows
	// outside the scope read as not found.
	var row model.NotificationModel
	if err := recipientScope(ctrl.DB.Where("notification_id = ?", id), c, role, subjectID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	if err := ctrl.DB.Model(&row).Updates(map[string]interface{}{
		"notification_is_read": true,
		"notification_read_at": now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark read")
	}
	return helper.Success(c, "Notification marked read", nil)
}

// PATCH /api/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	subjectID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	q := recipientScope(
		ctrl.DB.Model(&model.NotificationModel{}).Where("notification_is_read = false"),
		c, role, subjectID,
	)

	now := time.Now()
	res := q.Updates(map[string]interface{}{
		"notification_is_read": true,
		"notification_read_at": now,
	})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark all read")
	}
	return helper.Success(c, "Notifications marked read", fiber.Map{"updated": res.RowsAffected})
}

/* ===================== CREATE (admin broadcast) ===================== */

type createNotificationRequest struct {
	RecipientType string     `json:"recipient_type" validate:"required,oneof=student user class all"`
	StudentId     *uuid.UUID `json:"student_id" validate:"omitempty"`
	UserId        *uuid.UUID `json:"user_id" validate:"omitempty"`
	Class         string     `json:"class" validate:"omitempty,max=20"`
	Section       string     `json:"section" validate:"omitempty,max=20"`

	Type     string `json:"type" validate:"omitempty,max=40"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=2000"`
	Link     string `json:"link" validate:"omitempty,max=500"`

	ScheduledFor *time.Time `json:"scheduled_for"`
}

// POST /api/notifications
func (ctrl *NotificationController) Create(c *fiber.Ctx) error {
	var req createNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.RecipientType == constants.RecipientStudent && req.StudentId == nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id required for student recipient")
	}
	if req.RecipientType == constants.RecipientClass && req.Class == "" {
		return fiber.NewError(fiber.StatusBadRequest, "class required for class recipient")
	}

	typ := req.Type
	if typ == "" {
		typ = constants.NotifGeneral
	}

	n := &model.NotificationModel{
		NotificationRecipientType: req.RecipientType,
		NotificationStudentId:     req.StudentId,
		NotificationUserId:        req.UserId,
		NotificationClass:         req.Class,
		NotificationSection:       req.Section,
		NotificationType:          typ,
		NotificationPriority:      req.Priority,
		NotificationTitle:         req.Title,
		NotificationMessage:       req.Message,
		NotificationLink:          req.Link,
	}
	if req.ScheduledFor != nil {
		n.NotificationIsScheduled = true
		n.NotificationScheduledFor = req.ScheduledFor
	}

	created, err := ctrl.Svc.Create(n, service.AllChannels())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create notification")
	}

	auditService.Record(ctrl.DB, c, "notification.create", "notifications", created.NotificationId.String(), map[string]interface{}{
		"recipient_type": req.RecipientType,
		"type":           typ,
	})
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Notification created", created)
}
