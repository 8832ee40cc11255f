package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	"coachingku_backend/internals/features/sms/dto"
	"coachingku_backend/internals/features/sms/model"
	"coachingku_backend/internals/features/sms/service"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

var smsLogSortColumns = map[string]string{
	"sms_log_created_at": "sms_log_created_at",
	"sms_log_status":     "sms_log_status",
	"sms_log_type":       "sms_log_type",
	"sms_log_sent_at":    "sms_log_sent_at",
}

type SmsController struct {
	DB *gorm.DB
}

func NewSmsController(db *gorm.DB) *SmsController {
	return &SmsController{DB: db}
}

func actorID(c *fiber.Ctx) *uuid.UUID {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

/* ===================== SEND RESULT SMS ===================== */
// POST /api/sms/send-result
// Runs synchronously so the admin sees the sent/failed/skipped counts.
func (ctrl *SmsController) SendResultSms(c *fiber.Ctx) error {
	var req dto.SendResultSmsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := service.SendBulkResultSms(c.Context(), ctrl.DB, req.TestId, actorID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	auditService.Record(ctrl.DB, c, "sms.send_result", "sms_logs", req.TestId.String(), map[string]interface{}{
		"sent":    report.Sent,
		"failed":  report.Failed,
		"skipped": report.Skipped,
	})
	return helper.Success(c, "Result SMS batch processed", report)
}

/* ===================== SEND CUSTOM SMS ===================== */
// POST /api/sms/send-custom
func (ctrl *SmsController) SendCustomSms(c *fiber.Ctx) error {
	var req dto.SendCustomSmsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Class == "" && len(req.StudentIds) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Provide a class or explicit student_ids")
	}

	report, err := service.SendCustomSms(c.Context(), ctrl.DB, service.CustomSmsInput{
		Class:      req.Class,
		Section:    req.Section,
		StudentIds: req.StudentIds,
		Message:    req.Message,
		PhoneField: req.PhoneField,
	}, actorID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	auditService.Record(ctrl.DB, c, "sms.send_custom", "sms_logs", "", map[string]interface{}{
		"class":   req.Class,
		"sent":    report.Sent,
		"failed":  report.Failed,
		"skipped": report.Skipped,
	})
	return helper.Success(c, "Custom SMS batch processed", report)
}

/* ===================== LOGS ===================== */
// GET /api/sms/logs
func (ctrl *SmsController) ListLogs(c *fiber.Ctx) error {
	var f dto.FilterSmsLogRequest
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParsePage(c, "sms_log_created_at", "desc")

	q := ctrl.DB.Model(&model.SmsLogModel{})
	if f.StudentId != "" {
		q = q.Where("sms_log_student_id = ?", f.StudentId)
	}
	if f.TestId != "" {
		q = q.Where("sms_log_test_id = ?", f.TestId)
	}
	if f.Type != "" {
		q = q.Where("sms_log_type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("sms_log_status = ?", f.Status)
	}
	if f.Phone != "" {
		q = q.Where("sms_log_phone ILIKE ?", "%"+f.Phone+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count SMS logs")
	}

	var logs []model.SmsLogModel
	if err := q.Order(p.SafeOrderClause(smsLogSortColumns, "sms_log_created_at")).Limit(p.PerPage).Offset(p.Offset()).Find(&logs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch SMS logs")
	}

	return helper.Success(c, "SMS logs fetched", fiber.Map{
		"logs":       logs,
		"pagination": helper.BuildPageMeta(p, total),
	})
}

/* ===================== STATS ===================== */
// GET /api/sms/stats
func (ctrl *SmsController) Stats(c *fiber.Ctx) error {
	type statRow struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var rows []statRow
	if err := ctrl.DB.Model(&model.SmsLogModel{}).
		Select("sms_log_status AS status, COUNT(*) AS count").
		Group("sms_log_status").
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute SMS stats")
	}

	stats := fiber.Map{"queued": int64(0), "sent": int64(0), "failed": int64(0), "total": int64(0)}
	var total int64
	for _, r := range rows {
		stats[r.Status] = r.Count
		total += r.Count
	}
	stats["total"] = total
	return helper.Success(c, "SMS stats", stats)
}

/* ===================== BALANCE ===================== */
// GET /api/sms/balance
func (ctrl *SmsController) Balance(c *fiber.Ctx) error {
	body, err := service.CheckBalance(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return helper.Success(c, "SMS balance", body)
}
