package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TypeResultSms = "result_sms"
	TypeCustomSms = "custom_sms"

	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// SmsLogModel is one row per send attempt — audit trail and dedup key in one.
// The row is written with status `queued` before the provider call so the
// attempt is on record even if the process dies mid-send.
type SmsLogModel struct {
	SmsLogId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:sms_log_id" json:"sms_log_id"`

	SmsLogStudentId *uuid.UUID `gorm:"type:uuid;index;column:sms_log_student_id" json:"sms_log_student_id,omitempty"`
	SmsLogTestId    *uuid.UUID `gorm:"type:uuid;index;column:sms_log_test_id" json:"sms_log_test_id,omitempty"`

	SmsLogRecipientName string `gorm:"column:sms_log_recipient_name" json:"sms_log_recipient_name"`
	SmsLogPhone         string `gorm:"not null;index;column:sms_log_phone" json:"sms_log_phone"`
	SmsLogMessage       string `gorm:"not null;column:sms_log_message" json:"sms_log_message"`

	SmsLogType   string `gorm:"not null;index;column:sms_log_type" json:"sms_log_type"`     // result_sms|custom_sms
	SmsLogStatus string `gorm:"not null;index;column:sms_log_status" json:"sms_log_status"` // queued|sent|failed

	SmsLogRetryCount       int               `gorm:"default:0;column:sms_log_retry_count" json:"sms_log_retry_count"`
	SmsLogProviderResponse datatypes.JSONMap `gorm:"type:jsonb;column:sms_log_provider_response" json:"sms_log_provider_response,omitempty"`
	SmsLogError            string            `gorm:"column:sms_log_error" json:"sms_log_error,omitempty"`

	SmsLogSentBy *uuid.UUID `gorm:"type:uuid;column:sms_log_sent_by" json:"sms_log_sent_by,omitempty"`

	SmsLogCreatedAt time.Time  `gorm:"column:sms_log_created_at;autoCreateTime;index" json:"sms_log_created_at"`
	SmsLogUpdatedAt *time.Time `gorm:"column:sms_log_updated_at;autoUpdateTime" json:"sms_log_updated_at,omitempty"`
}

func (SmsLogModel) TableName() string { return "sms_logs" }
