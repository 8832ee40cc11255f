package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type NotificationModel struct {
	NotificationId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:notification_id" json:"notification_id"`

	// recipient: exactly one addressing mode per row
	NotificationRecipientType string     `gorm:"not null;index;column:notification_recipient_type" json:"notification_recipient_type"` // student|user|class|all
	NotificationStudentId     *uuid.UUID `gorm:"type:uuid;index;column:notification_student_id" json:"notification_student_id,omitempty"`
	NotificationUserId        *uuid.UUID `gorm:"type:uuid;index;column:notification_user_id" json:"notification_user_id,omitempty"`
	NotificationClass         string     `gorm:"index;column:notification_class" json:"notification_class,omitempty"`
	NotificationSection       string     `gorm:"column:notification_section" json:"notification_section,omitempty"`

	NotificationType     string `gorm:"not null;index;column:notification_type" json:"notification_type"`
	NotificationPriority string `gorm:"not null;default:'normal';column:notification_priority" json:"notification_priority"`

	NotificationTitle   string `gorm:"not null;column:notification_title" json:"notification_title"`
	NotificationMessage string `gorm:"not null;column:notification_message" json:"notification_message"`
	NotificationLink    string `gorm:"column:notification_link" json:"notification_link,omitempty"`

	NotificationData datatypes.JSONMap `gorm:"type:jsonb;column:notification_data" json:"notification_data,omitempty"`

	NotificationIsRead bool       `gorm:"default:false;index;column:notification_is_read" json:"notification_is_read"`
	NotificationReadAt *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`

	// per-channel delivery bookkeeping
	NotificationDeliveredChannels pq.StringArray `gorm:"type:text[];column:notification_delivered_channels" json:"notification_delivered_channels,omitempty"`
	NotificationEmailSent         bool           `gorm:"default:false;column:notification_email_sent" json:"notification_email_sent"`
	NotificationEmailSentAt       *time.Time     `gorm:"column:notification_email_sent_at" json:"notification_email_sent_at,omitempty"`
	NotificationEmailError        string         `gorm:"column:notification_email_error" json:"notification_email_error,omitempty"`

	// deferred dispatch
	NotificationIsScheduled  bool       `gorm:"default:false;index;column:notification_is_scheduled" json:"notification_is_scheduled"`
	NotificationScheduledFor *time.Time `gorm:"column:notification_scheduled_for" json:"notification_scheduled_for,omitempty"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime;index" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
