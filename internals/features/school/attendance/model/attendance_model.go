package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeClass = "class"
	TypeTest  = "test"

	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// AttendanceModel is one row per (student, session). Uniqueness is enforced
// by partial indexes created in the migration step:
//   - class rows: (student, date, class_id) — class_id defaults to the zero
//     UUID so date-only marking still dedups, while several sittings per day
//     across different class sessions are allowed
//   - test rows: (student, test_id)
type AttendanceModel struct {
	AttendanceId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`

	AttendanceStudentId uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_student_id" json:"attendance_student_id"`
	AttendanceType      string    `gorm:"not null;index;column:attendance_type" json:"attendance_type"` // class|test

	AttendanceDate    time.Time  `gorm:"type:date;not null;index;column:attendance_date" json:"attendance_date"`
	AttendanceClassId uuid.UUID  `gorm:"type:uuid;not null;default:'00000000-0000-0000-0000-000000000000';column:attendance_class_id" json:"attendance_class_id"`
	AttendanceTestId  *uuid.UUID `gorm:"type:uuid;index;column:attendance_test_id" json:"attendance_test_id,omitempty"`

	AttendanceStatus string `gorm:"not null;column:attendance_status" json:"attendance_status"` // present|absent|late
	AttendanceNote   string `gorm:"column:attendance_note" json:"attendance_note,omitempty"`

	AttendanceMarkedBy *uuid.UUID `gorm:"type:uuid;column:attendance_marked_by" json:"attendance_marked_by,omitempty"`

	AttendanceCreatedAt time.Time      `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt *time.Time     `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at,omitempty"`
	AttendanceDeletedAt gorm.DeletedAt `gorm:"column:attendance_deleted_at;index" json:"attendance_deleted_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLate
}
