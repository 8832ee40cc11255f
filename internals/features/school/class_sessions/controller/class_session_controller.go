package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	notifService "coachingku_backend/internals/features/notifications/service"
	"coachingku_backend/internals/features/school/class_sessions/dto"
	"coachingku_backend/internals/features/school/class_sessions/model"
	helper "coachingku_backend/internals/helpers"
	"coachingku_backend/internals/logger"
)

var validate = validator.New()

var classSessionSortColumns = map[string]string{
	"class_session_date":       "class_session_date",
	"class_session_subject":    "class_session_subject",
	"class_session_status":     "class_session_status",
	"class_session_created_at": "class_session_created_at",
}

type ClassSessionController struct {
	DB    *gorm.DB
	Notif *notifService.Service
}

func NewClassSessionController(db *gorm.DB) *ClassSessionController {
	return &ClassSessionController{DB: db, Notif: notifService.New(db)}
}

func (ctrl *ClassSessionController) eventInfo(s model.ClassSessionModel) notifService.ClassSessionEventInfo {
	return notifService.ClassSessionEventInfo{
		SessionID: s.ClassSessionId.String(),
		Subject:   s.ClassSessionSubject,
		Class:     s.ClassSessionClass,
		Section:   s.ClassSessionSection,
		Date:      s.ClassSessionDate,
		StartTime: s.ClassSessionStartTime,
	}
}

/* ===================== CREATE ===================== */
// POST /api/class-sessions
func (ctrl *ClassSessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class session")
	}

	if _, err := ctrl.Notif.NotifyClassSession(notifService.EventCreated, ctrl.eventInfo(*m)); err != nil {
		logger.Log.WithError(err).Warn("class created notification failed")
	}

	auditService.Record(ctrl.DB, c, "class_session.create", "class_sessions", m.ClassSessionId.String(), map[string]interface{}{
		"class":   m.ClassSessionClass,
		"subject": m.ClassSessionSubject,
	})
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Class session created", m)
}

/* ===================== LIST ===================== */
// GET /api/class-sessions
func (ctrl *ClassSessionController) List(c *fiber.Ctx) error {
	var f dto.FilterClassSessionRequest
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParsePage(c, "class_session_date", "desc")

	q := ctrl.DB.Model(&model.ClassSessionModel{})
	if f.Class != "" {
		q = q.Where("class_session_class = ?", f.Class)
	}
	if f.Section != "" {
		q = q.Where("class_session_section = ? OR class_session_section = ''", f.Section)
	}
	if f.Status != "" {
		q = q.Where("class_session_status = ?", f.Status)
	}
	if f.From != "" {
		if from, err := time.Parse("2006-01-02", f.From); err == nil {
			q = q.Where("class_session_date >= ?", from)
		}
	}
	if f.To != "" {
		if to, err := time.Parse("2006-01-02", f.To); err == nil {
			q = q.Where("class_session_date <= ?", to)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ClassSessionModel
	if err := q.Order(p.SafeOrderClause(classSessionSortColumns, "class_session_date")).Limit(p.PerPage).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Class sessions fetched", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPageMeta(p, total),
	})
}

/* ===================== CANCEL / RESCHEDULE ===================== */
// POST /api/class-sessions/:id/cancel
func (ctrl *ClassSessionController) Cancel(c *fiber.Ctx) error {
	s, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if s.ClassSessionStatus == model.StatusCancelled {
		return fiber.NewError(fiber.StatusConflict, "Class session is already cancelled")
	}

	if err := ctrl.DB.Model(s).Update("class_session_status", model.StatusCancelled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel class session")
	}
	s.ClassSessionStatus = model.StatusCancelled

	if _, err := ctrl.Notif.NotifyClassSession(notifService.EventCancelled, ctrl.eventInfo(*s)); err != nil {
		logger.Log.WithError(err).Warn("class cancelled notification failed")
	}

	auditService.Record(ctrl.DB, c, "class_session.cancel", "class_sessions", s.ClassSessionId.String(), nil)
	return helper.Success(c, "Class session cancelled", s)
}

// POST /api/class-sessions/:id/reschedule
func (ctrl *ClassSessionController) Reschedule(c *fiber.Ctx) error {
	s, err := ctrl.load(c)
	if err != nil {
		return err
	}

	var req dto.RescheduleClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.DB.Model(s).Updates(map[string]interface{}{
		"class_session_date":              req.ClassSessionDate,
		"class_session_start_time":        req.ClassSessionStartTime,
		"class_session_end_time":          req.ClassSessionEndTime,
		"class_session_status":            model.StatusScheduled,
		"class_session_reminder_24h_sent": false,
		"class_session_reminder_1h_sent":  false,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reschedule class session")
	}
	s.ClassSessionDate = req.ClassSessionDate
	s.ClassSessionStartTime = req.ClassSessionStartTime
	s.ClassSessionEndTime = req.ClassSessionEndTime
	s.ClassSessionStatus = model.StatusScheduled

	if _, err := ctrl.Notif.NotifyClassSession(notifService.EventRescheduled, ctrl.eventInfo(*s)); err != nil {
		logger.Log.WithError(err).Warn("class rescheduled notification failed")
	}

	auditService.Record(ctrl.DB, c, "class_session.reschedule", "class_sessions", s.ClassSessionId.String(), nil)
	return helper.Success(c, "Class session rescheduled", s)
}

// DELETE /api/class-sessions/:id
func (ctrl *ClassSessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class session id")
	}

	res := ctrl.DB.Delete(&model.ClassSessionModel{}, "class_session_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class session")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Class session not found")
	}

	auditService.Record(ctrl.DB, c, "class_session.delete", "class_sessions", id.String(), nil)
	return helper.Success(c, "Class session deleted", nil)
}

func (ctrl *ClassSessionController) load(c *fiber.Ctx) (*model.ClassSessionModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid class session id")
	}
	var s model.ClassSessionModel
	if err := ctrl.DB.First(&s, "class_session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}
