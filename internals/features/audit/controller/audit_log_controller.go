package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/audit/model"
	helper "coachingku_backend/internals/helpers"
)

type AuditLogController struct {
	DB *gorm.DB
}

func NewAuditLogController(db *gorm.DB) *AuditLogController {
	return &AuditLogController{DB: db}
}

var auditLogSortColumns = map[string]string{
	"audit_log_created_at": "audit_log_created_at",
	"audit_log_action":     "audit_log_action",
	"audit_log_entity":     "audit_log_entity",
}

// GET /api/audit-logs
func (ctrl *AuditLogController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "audit_log_created_at", "desc")

	q := ctrl.DB.Model(&model.AuditLogModel{})
	if action := c.Query("action"); action != "" {
		q = q.Where("audit_log_action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("audit_log_entity = ?", entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AuditLogModel
	if err := q.Order(p.SafeOrderClause(auditLogSortColumns, "audit_log_created_at")).Limit(p.PerPage).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Audit logs fetched", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPageMeta(p, total),
	})
}
