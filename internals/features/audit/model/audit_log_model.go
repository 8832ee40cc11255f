package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogModel struct {
	AuditLogId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_log_id" json:"audit_log_id"`

	AuditLogAction    string     `gorm:"not null;index;column:audit_log_action" json:"audit_log_action"`
	AuditLogActorId   *uuid.UUID `gorm:"type:uuid;index;column:audit_log_actor_id" json:"audit_log_actor_id,omitempty"`
	AuditLogActorRole string     `gorm:"column:audit_log_actor_role" json:"audit_log_actor_role"`

	AuditLogEntity   string `gorm:"not null;index;column:audit_log_entity" json:"audit_log_entity"`
	AuditLogEntityId string `gorm:"column:audit_log_entity_id" json:"audit_log_entity_id"`

	AuditLogDetails datatypes.JSONMap `gorm:"type:jsonb;column:audit_log_details" json:"audit_log_details,omitempty"`
	AuditLogIp      string            `gorm:"column:audit_log_ip" json:"audit_log_ip"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;autoCreateTime;index" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
