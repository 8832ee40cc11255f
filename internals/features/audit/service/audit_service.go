package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/audit/model"
	"coachingku_backend/internals/logger"
)

// Record writes an audit row for a mutating request. Failures are logged and
// swallowed so auditing never blocks the primary write.
func Record(db *gorm.DB, c *fiber.Ctx, action, entity, entityID string, details map[string]interface{}) {
	var actorID *uuid.UUID
	if raw, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			actorID = &id
		}
	}
	role, _ := c.Locals("role").(string)

	row := model.AuditLogModel{
		AuditLogAction:    action,
		AuditLogActorId:   actorID,
		AuditLogActorRole: role,
		AuditLogEntity:    entity,
		AuditLogEntityId:  entityID,
		AuditLogDetails:   datatypes.JSONMap(details),
		AuditLogIp:        c.IP(),
	}
	if err := db.Create(&row).Error; err != nil {
		logger.Log.WithError(err).Warn("audit log write failed")
	}
}
