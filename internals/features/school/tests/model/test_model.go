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

// Subject is one (name, maxMarks) pair of a test definition, stored as JSONB.
type Subject struct {
	Name     string `json:"name"`
	MaxMarks int    `json:"max_marks"`
}

type SubjectList []Subject

type TestModel struct {
	TestId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:test_id" json:"test_id"`

	TestName string `gorm:"not null;column:test_name" json:"test_name"`
	TestCode string `gorm:"not null;uniqueIndex,where:test_deleted_at IS NULL;column:test_code" json:"test_code"`

	TestClass   string `gorm:"not null;index;column:test_class" json:"test_class"`
	TestSection string `gorm:"column:test_section" json:"test_section"`

	TestDate      time.Time `gorm:"type:date;not null;index;column:test_date" json:"test_date"`
	TestStartTime string    `gorm:"not null;column:test_start_time" json:"test_start_time"` // "15:04"
	TestEndTime   string    `gorm:"not null;column:test_end_time" json:"test_end_time"`

	TestSubjects      SubjectList `gorm:"serializer:json;type:jsonb;column:test_subjects" json:"test_subjects"`
	TestTotalMaxMarks int         `gorm:"not null;default:0;column:test_total_max_marks" json:"test_total_max_marks"`

	TestStatus      string     `gorm:"not null;default:'scheduled';index;column:test_status" json:"test_status"`
	TestIsPublished bool       `gorm:"default:false;column:test_is_published" json:"test_is_published"`
	TestPublishedAt *time.Time `gorm:"column:test_published_at" json:"test_published_at,omitempty"`

	TestReminder24hSent bool `gorm:"default:false;column:test_reminder_24h_sent" json:"test_reminder_24h_sent"`
	TestReminder1hSent  bool `gorm:"default:false;column:test_reminder_1h_sent" json:"test_reminder_1h_sent"`

	TestCreatedAt time.Time      `gorm:"column:test_created_at;autoCreateTime" json:"test_created_at"`
	TestUpdatedAt *time.Time     `gorm:"column:test_updated_at;autoUpdateTime" json:"test_updated_at,omitempty"`
	TestDeletedAt gorm.DeletedAt `gorm:"column:test_deleted_at;index" json:"test_deleted_at,omitempty"`
}

func (TestModel) TableName() string { return "tests" }
