package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusScheduled = "scheduled"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type ClassSessionModel struct {
	ClassSessionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_session_id" json:"class_session_id"`

	ClassSessionClass   string `gorm:"not null;index;column:class_session_class" json:"class_session_class"`
	ClassSessionSection string `gorm:"column:class_session_section" json:"class_session_section,omitempty"`
	ClassSessionSubject string `gorm:"not null;column:class_session_subject" json:"class_session_subject"`
	ClassSessionTopic   string `gorm:"column:class_session_topic" json:"class_session_topic,omitempty"`

	ClassSessionDate      time.Time `gorm:"type:date;not null;index;column:class_session_date" json:"class_session_date"`
	ClassSessionStartTime string    `gorm:"not null;column:class_session_start_time" json:"class_session_start_time"` // "15:04"
	ClassSessionEndTime   string    `gorm:"not null;column:class_session_end_time" json:"class_session_end_time"`

	ClassSessionStatus string `gorm:"not null;default:'scheduled';index;column:class_session_status" json:"class_session_status"`

	ClassSessionReminder24hSent bool `gorm:"default:false;column:class_session_reminder_24h_sent" json:"class_session_reminder_24h_sent"`
	ClassSessionReminder1hSent  bool `gorm:"default:false;column:class_session_reminder_1h_sent" json:"class_session_reminder_1h_sent"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt *time.Time     `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at,omitempty"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at;index" json:"class_session_deleted_at,omitempty"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }
